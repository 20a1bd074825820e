package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

type ItemService struct {
	db DB
}

func NewItemService(database DB) *ItemService {
	return &ItemService{db: database}
}

type CreateItemParams struct {
	SKU         string
	Name        string
	Description *string
	Unit        string
	UnitCost    float64
}

func (s *ItemService) Create(ctx context.Context, companyID string, p CreateItemParams) (*model.Item, error) {
	now := time.Now()
	item := &model.Item{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		UnitCost:    p.UnitCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO items (id, company_id, sku, name, description, unit, unit_cost, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		item.ID, item.CompanyID, item.SKU, item.Name, item.Description, item.Unit, item.UnitCost, now)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// ListByCompany returns the company's catalog, optionally filtered by a
// case-insensitive search on sku or name and capped at limit rows
// (0 = no cap).
func (s *ItemService) ListByCompany(ctx context.Context, companyID, search string, limit int) ([]model.Item, error) {
	query := `SELECT id, company_id, sku, name, description, unit, unit_cost, created_at, updated_at
		 FROM items WHERE company_id = $1`
	args := []any{companyID}
	if search != "" {
		query += fmt.Sprintf(` AND (sku ILIKE $%d OR name ILIKE $%d)`, len(args)+1, len(args)+1)
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY sku`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.SKU, &it.Name, &it.Description,
			&it.Unit, &it.UnitCost, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *ItemService) GetByID(ctx context.Context, companyID, id string) (*model.Item, error) {
	var it model.Item
	err := s.db.QueryRow(ctx,
		`SELECT id, company_id, sku, name, description, unit, unit_cost, created_at, updated_at
		 FROM items WHERE id = $1 AND company_id = $2`, id, companyID,
	).Scan(&it.ID, &it.CompanyID, &it.SKU, &it.Name, &it.Description,
		&it.Unit, &it.UnitCost, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, notFoundOr(err))
	}
	return &it, nil
}

var itemColumns = map[string]string{
	"unitCost": "unit_cost",
}

func (s *ItemService) Update(ctx context.Context, companyID, id string, fields []db.Field) (*model.Item, error) {
	clause, values, err := db.BuildPartialUpdate(fields, itemColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE items SET %s, updated_at = now() WHERE id = $%d AND company_id = $%d
		 RETURNING id, company_id, sku, name, description, unit, unit_cost, created_at, updated_at`,
		clause, len(values)+1, len(values)+2)

	var it model.Item
	err = s.db.QueryRow(ctx, query, append(values, id, companyID)...).Scan(
		&it.ID, &it.CompanyID, &it.SKU, &it.Name, &it.Description,
		&it.Unit, &it.UnitCost, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update item %s: %w", id, notFoundOr(err))
	}
	return &it, nil
}

func (s *ItemService) Delete(ctx context.Context, companyID, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM items WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
