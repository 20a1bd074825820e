package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

type CustomerService struct {
	db DB
}

func NewCustomerService(database DB) *CustomerService {
	return &CustomerService{db: database}
}

type CreateCustomerParams struct {
	Name        string
	ContactName *string
	Email       *string
	Phone       *string
	Address     *string
}

func (s *CustomerService) Create(ctx context.Context, companyID string, p CreateCustomerParams) (*model.Customer, error) {
	now := time.Now()
	c := &model.Customer{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Name:        p.Name,
		ContactName: p.ContactName,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO customers (id, company_id, name, contact_name, email, phone, address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		c.ID, c.CompanyID, c.Name, c.ContactName, c.Email, c.Phone, c.Address, now)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// ListByCompany returns the company's customers, optionally filtered by
// a case-insensitive name search and capped at limit rows (0 = no cap).
func (s *CustomerService) ListByCompany(ctx context.Context, companyID, search string, limit int) ([]model.Customer, error) {
	query := `SELECT id, company_id, name, contact_name, email, phone, address, created_at, updated_at
		 FROM customers WHERE company_id = $1`
	args := []any{companyID}
	if search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args)+1)
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.ContactName, &c.Email,
			&c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *CustomerService) GetByID(ctx context.Context, companyID, id string) (*model.Customer, error) {
	var c model.Customer
	err := s.db.QueryRow(ctx,
		`SELECT id, company_id, name, contact_name, email, phone, address, created_at, updated_at
		 FROM customers WHERE id = $1 AND company_id = $2`, id, companyID,
	).Scan(&c.ID, &c.CompanyID, &c.Name, &c.ContactName, &c.Email,
		&c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, notFoundOr(err))
	}
	return &c, nil
}

var customerColumns = map[string]string{
	"contactName": "contact_name",
}

func (s *CustomerService) Update(ctx context.Context, companyID, id string, fields []db.Field) (*model.Customer, error) {
	clause, values, err := db.BuildPartialUpdate(fields, customerColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE customers SET %s, updated_at = now() WHERE id = $%d AND company_id = $%d
		 RETURNING id, company_id, name, contact_name, email, phone, address, created_at, updated_at`,
		clause, len(values)+1, len(values)+2)

	var c model.Customer
	err = s.db.QueryRow(ctx, query, append(values, id, companyID)...).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.ContactName, &c.Email,
		&c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update customer %s: %w", id, notFoundOr(err))
	}
	return &c, nil
}

func (s *CustomerService) Delete(ctx context.Context, companyID, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM customers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
