package core

import (
	"context"
	"fmt"

	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

type CompanyService struct {
	db DB
}

func NewCompanyService(database DB) *CompanyService {
	return &CompanyService{db: database}
}

func (s *CompanyService) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var c model.Company
	err := s.db.QueryRow(ctx,
		`SELECT id, name, address, phone, created_at, updated_at
		 FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", id, notFoundOr(err))
	}
	return &c, nil
}

var companyColumns = map[string]string{}

// Update applies a partial update to the company and returns the updated
// row. An empty field list surfaces db.ErrNoFields.
func (s *CompanyService) Update(ctx context.Context, id string, fields []db.Field) (*model.Company, error) {
	clause, values, err := db.BuildPartialUpdate(fields, companyColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE companies SET %s, updated_at = now() WHERE id = $%d
		 RETURNING id, name, address, phone, created_at, updated_at`,
		clause, len(values)+1)

	var c model.Company
	err = s.db.QueryRow(ctx, query, append(values, id)...).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update company %s: %w", id, notFoundOr(err))
	}
	return &c, nil
}

// Delete removes the company. Dependent rows (users, customers, items,
// rfqs, quotes) go with it via ON DELETE CASCADE.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
