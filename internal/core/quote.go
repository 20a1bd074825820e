package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

// ErrRFQNotQuotable is returned when a quote is requested for an RFQ
// whose status no longer allows quoting. Handlers map it to a 409.
var ErrRFQNotQuotable = errors.New("rfq cannot be quoted")

type QuoteService struct {
	db DB
}

func NewQuoteService(database DB) *QuoteService {
	return &QuoteService{db: database}
}

type CreateQuoteLineParams struct {
	ItemID    string
	Quantity  float64
	UnitPrice float64
}

type CreateQuoteParams struct {
	Reference  string
	ValidUntil *time.Time
	Notes      *string
	Lines      []CreateQuoteLineParams
}

// CreateFromRFQ inserts a quote for the given RFQ, with caller-supplied
// line pricing, and moves the RFQ to quoted. Everything happens in one
// transaction so a failed line insert never leaves a half-built quote.
func (s *QuoteService) CreateFromRFQ(ctx context.Context, companyID, rfqID string, p CreateQuoteParams) (*model.Quote, error) {
	var customerID, rfqStatus string
	err := s.db.QueryRow(ctx,
		`SELECT customer_id, status FROM rfqs WHERE id = $1 AND company_id = $2`,
		rfqID, companyID).Scan(&customerID, &rfqStatus)
	if err != nil {
		return nil, fmt.Errorf("get rfq %s: %w", rfqID, notFoundOr(err))
	}
	if rfqStatus == model.RFQStatusClosed || rfqStatus == model.RFQStatusCancelled {
		return nil, fmt.Errorf("rfq %s is %s: %w", rfqID, rfqStatus, ErrRFQNotQuotable)
	}

	now := time.Now()
	quote := &model.Quote{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		RFQID:      rfqID,
		CustomerID: customerID,
		Reference:  p.Reference,
		Status:     model.QuoteStatusDraft,
		ValidUntil: p.ValidUntil,
		Notes:      p.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create quote: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO quotes (id, company_id, rfq_id, customer_id, reference, status, valid_until, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		quote.ID, quote.CompanyID, quote.RFQID, quote.CustomerID, quote.Reference,
		quote.Status, quote.ValidUntil, quote.Notes, now)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	for _, line := range p.Lines {
		l := model.QuoteLine{
			ID:        uuid.NewString(),
			QuoteID:   quote.ID,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO quote_lines (id, quote_id, item_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.QuoteID, l.ItemID, l.Quantity, l.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("create quote line: %w", err)
		}
		quote.Lines = append(quote.Lines, l)
	}

	_, err = tx.Exec(ctx,
		`UPDATE rfqs SET status = $1, updated_at = now() WHERE id = $2`,
		model.RFQStatusQuoted, rfqID)
	if err != nil {
		return nil, fmt.Errorf("mark rfq quoted: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create quote: %w", err)
	}
	return quote, nil
}

// ListByCompany returns the company's quotes with customer and RFQ
// references joined, optionally filtered by status and capped at limit
// rows (0 = no cap).
func (s *QuoteService) ListByCompany(ctx context.Context, companyID, status string, limit int) ([]model.Quote, error) {
	query := `SELECT q.id, q.company_id, q.rfq_id, r.reference, q.customer_id, c.name, q.reference, q.status, q.valid_until, q.notes, q.created_at, q.updated_at
		 FROM quotes q
		 JOIN rfqs r ON r.id = q.rfq_id
		 JOIN customers c ON c.id = q.customer_id
		 WHERE q.company_id = $1`
	args := []any{companyID}
	if status != "" {
		query += ` AND q.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY q.created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(&q.ID, &q.CompanyID, &q.RFQID, &q.RFQReference, &q.CustomerID,
			&q.CustomerName, &q.Reference, &q.Status, &q.ValidUntil, &q.Notes,
			&q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// GetByID returns a quote with its lines joined to catalog items.
func (s *QuoteService) GetByID(ctx context.Context, companyID, id string) (*model.Quote, error) {
	var q model.Quote
	err := s.db.QueryRow(ctx,
		`SELECT q.id, q.company_id, q.rfq_id, r.reference, q.customer_id, c.name, q.reference, q.status, q.valid_until, q.notes, q.created_at, q.updated_at
		 FROM quotes q
		 JOIN rfqs r ON r.id = q.rfq_id
		 JOIN customers c ON c.id = q.customer_id
		 WHERE q.id = $1 AND q.company_id = $2`, id, companyID,
	).Scan(&q.ID, &q.CompanyID, &q.RFQID, &q.RFQReference, &q.CustomerID,
		&q.CustomerName, &q.Reference, &q.Status, &q.ValidUntil, &q.Notes,
		&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get quote %s: %w", id, notFoundOr(err))
	}

	rows, err := s.db.Query(ctx,
		`SELECT l.id, l.quote_id, l.item_id, i.sku, i.name, l.quantity, l.unit_price
		 FROM quote_lines l
		 JOIN items i ON i.id = l.item_id
		 WHERE l.quote_id = $1
		 ORDER BY i.sku`, id)
	if err != nil {
		return nil, fmt.Errorf("list quote lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l model.QuoteLine
		if err := rows.Scan(&l.ID, &l.QuoteID, &l.ItemID, &l.ItemSKU, &l.ItemName,
			&l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan quote line: %w", err)
		}
		q.Lines = append(q.Lines, l)
	}
	return &q, rows.Err()
}

var quoteColumns = map[string]string{
	"validUntil": "valid_until",
}

func (s *QuoteService) Update(ctx context.Context, companyID, id string, fields []db.Field) (*model.Quote, error) {
	clause, values, err := db.BuildPartialUpdate(fields, quoteColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE quotes SET %s, updated_at = now() WHERE id = $%d AND company_id = $%d
		 RETURNING id, company_id, rfq_id, customer_id, reference, status, valid_until, notes, created_at, updated_at`,
		clause, len(values)+1, len(values)+2)

	var q model.Quote
	err = s.db.QueryRow(ctx, query, append(values, id, companyID)...).Scan(
		&q.ID, &q.CompanyID, &q.RFQID, &q.CustomerID, &q.Reference,
		&q.Status, &q.ValidUntil, &q.Notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update quote %s: %w", id, notFoundOr(err))
	}
	return &q, nil
}

func (s *QuoteService) Delete(ctx context.Context, companyID, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM quotes WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete quote %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
