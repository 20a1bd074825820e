package model

import "time"

// Quote statuses. A quote moves draft -> sent -> accepted or rejected.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

type Quote struct {
	ID           string      `json:"id"`
	CompanyID    string      `json:"company_id"`
	RFQID        string      `json:"rfq_id"`
	RFQReference string      `json:"rfq_reference,omitempty"`
	CustomerID   string      `json:"customer_id"`
	CustomerName string      `json:"customer_name,omitempty"`
	Reference    string      `json:"reference"`
	Status       string      `json:"status"`
	ValidUntil   *time.Time  `json:"valid_until"`
	Notes        *string     `json:"notes"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Lines        []QuoteLine `json:"lines,omitempty"`
}

type QuoteLine struct {
	ID        string  `json:"id"`
	QuoteID   string  `json:"quote_id"`
	ItemID    string  `json:"item_id"`
	ItemSKU   string  `json:"item_sku,omitempty"`
	ItemName  string  `json:"item_name,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
