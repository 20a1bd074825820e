package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

type RFQService struct {
	db DB
}

func NewRFQService(database DB) *RFQService {
	return &RFQService{db: database}
}

type CreateRFQLineParams struct {
	ItemID   string
	Quantity float64
	Notes    *string
}

type CreateRFQParams struct {
	CustomerID string
	Reference  string
	Notes      *string
	DueDate    *time.Time
	Lines      []CreateRFQLineParams
}

// Create inserts an RFQ and its lines in one transaction. The customer
// must belong to the company; the FK plus the scoped existence check
// below keep cross-tenant references out.
func (s *RFQService) Create(ctx context.Context, companyID string, p CreateRFQParams) (*model.RFQ, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1 AND company_id = $2)`,
		p.CustomerID, companyID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("customer %s: %w", p.CustomerID, ErrNotFound)
	}

	now := time.Now()
	rfq := &model.RFQ{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		CustomerID: p.CustomerID,
		Reference:  p.Reference,
		Status:     model.RFQStatusOpen,
		Notes:      p.Notes,
		DueDate:    p.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create rfq: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO rfqs (id, company_id, customer_id, reference, status, notes, due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		rfq.ID, rfq.CompanyID, rfq.CustomerID, rfq.Reference, rfq.Status, rfq.Notes, rfq.DueDate, now)
	if err != nil {
		return nil, fmt.Errorf("create rfq: %w", err)
	}

	for _, line := range p.Lines {
		l := model.RFQLine{
			ID:       uuid.NewString(),
			RFQID:    rfq.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO rfq_lines (id, rfq_id, item_id, quantity, notes)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.RFQID, l.ItemID, l.Quantity, l.Notes)
		if err != nil {
			return nil, fmt.Errorf("create rfq line: %w", err)
		}
		rfq.Lines = append(rfq.Lines, l)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create rfq: %w", err)
	}
	return rfq, nil
}

// ListByCompany returns the company's RFQs with customer names joined,
// optionally filtered by status and capped at limit rows (0 = no cap).
func (s *RFQService) ListByCompany(ctx context.Context, companyID, status string, limit int) ([]model.RFQ, error) {
	query := `SELECT r.id, r.company_id, r.customer_id, c.name, r.reference, r.status, r.notes, r.due_date, r.created_at, r.updated_at
		 FROM rfqs r
		 JOIN customers c ON c.id = r.customer_id
		 WHERE r.company_id = $1`
	args := []any{companyID}
	if status != "" {
		query += ` AND r.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY r.created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rfqs for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var rfqs []model.RFQ
	for rows.Next() {
		var r model.RFQ
		if err := rows.Scan(&r.ID, &r.CompanyID, &r.CustomerID, &r.CustomerName, &r.Reference,
			&r.Status, &r.Notes, &r.DueDate, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rfq: %w", err)
		}
		rfqs = append(rfqs, r)
	}
	return rfqs, rows.Err()
}

// GetByID returns an RFQ with its lines joined to catalog items.
func (s *RFQService) GetByID(ctx context.Context, companyID, id string) (*model.RFQ, error) {
	var r model.RFQ
	err := s.db.QueryRow(ctx,
		`SELECT r.id, r.company_id, r.customer_id, c.name, r.reference, r.status, r.notes, r.due_date, r.created_at, r.updated_at
		 FROM rfqs r
		 JOIN customers c ON c.id = r.customer_id
		 WHERE r.id = $1 AND r.company_id = $2`, id, companyID,
	).Scan(&r.ID, &r.CompanyID, &r.CustomerID, &r.CustomerName, &r.Reference,
		&r.Status, &r.Notes, &r.DueDate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get rfq %s: %w", id, notFoundOr(err))
	}

	rows, err := s.db.Query(ctx,
		`SELECT l.id, l.rfq_id, l.item_id, i.sku, i.name, l.quantity, l.notes
		 FROM rfq_lines l
		 JOIN items i ON i.id = l.item_id
		 WHERE l.rfq_id = $1
		 ORDER BY i.sku`, id)
	if err != nil {
		return nil, fmt.Errorf("list rfq lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l model.RFQLine
		if err := rows.Scan(&l.ID, &l.RFQID, &l.ItemID, &l.ItemSKU, &l.ItemName,
			&l.Quantity, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan rfq line: %w", err)
		}
		r.Lines = append(r.Lines, l)
	}
	return &r, rows.Err()
}

var rfqColumns = map[string]string{
	"dueDate": "due_date",
}

func (s *RFQService) Update(ctx context.Context, companyID, id string, fields []db.Field) (*model.RFQ, error) {
	clause, values, err := db.BuildPartialUpdate(fields, rfqColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE rfqs SET %s, updated_at = now() WHERE id = $%d AND company_id = $%d
		 RETURNING id, company_id, customer_id, reference, status, notes, due_date, created_at, updated_at`,
		clause, len(values)+1, len(values)+2)

	var r model.RFQ
	err = s.db.QueryRow(ctx, query, append(values, id, companyID)...).Scan(
		&r.ID, &r.CompanyID, &r.CustomerID, &r.Reference, &r.Status,
		&r.Notes, &r.DueDate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update rfq %s: %w", id, notFoundOr(err))
	}
	return &r, nil
}

func (s *RFQService) Delete(ctx context.Context, companyID, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM rfqs WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete rfq %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
