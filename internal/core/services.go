package core

type Services struct {
	Token     *TokenService
	Auth      *AuthService
	Company   *CompanyService
	User      *UserService
	Customer  *CustomerService
	Item      *ItemService
	RFQ       *RFQService
	Quote     *QuoteService
	Dashboard *DashboardService
}

func NewServices(db DB, jwtSecret string) *Services {
	tokens := NewTokenService(jwtSecret)
	return &Services{
		Token:     tokens,
		Auth:      NewAuthService(db, tokens),
		Company:   NewCompanyService(db),
		User:      NewUserService(db),
		Customer:  NewCustomerService(db),
		Item:      NewItemService(db),
		RFQ:       NewRFQService(db),
		Quote:     NewQuoteService(db),
		Dashboard: NewDashboardService(db),
	}
}
