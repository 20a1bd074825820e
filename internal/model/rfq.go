package model

import "time"

// RFQ statuses. An RFQ moves open -> quoted -> closed; it can be
// cancelled at any point before closed.
const (
	RFQStatusOpen      = "open"
	RFQStatusQuoted    = "quoted"
	RFQStatusClosed    = "closed"
	RFQStatusCancelled = "cancelled"
)

type RFQ struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"company_id"`
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	Reference    string     `json:"reference"`
	Status       string     `json:"status"`
	Notes        *string    `json:"notes"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Lines        []RFQLine  `json:"lines,omitempty"`
}

type RFQLine struct {
	ID       string  `json:"id"`
	RFQID    string  `json:"rfq_id"`
	ItemID   string  `json:"item_id"`
	ItemSKU  string  `json:"item_sku,omitempty"`
	ItemName string  `json:"item_name,omitempty"`
	Quantity float64 `json:"quantity"`
	Notes    *string `json:"notes"`
}
