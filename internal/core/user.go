package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quotehub/quotehub/internal/db"
	"github.com/quotehub/quotehub/internal/model"
)

type UserService struct {
	db DB
}

func NewUserService(database DB) *UserService {
	return &UserService{db: database}
}

type CreateUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsAdmin   bool
}

// Create adds a user to the company. Admin-only at the route level.
func (s *UserService) Create(ctx context.Context, companyID string, p CreateUserParams) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Email:        p.Email,
		PasswordHash: string(hash),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		IsAdmin:      p.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO users (id, company_id, email, password_hash, first_name, last_name, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		user.ID, user.CompanyID, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.IsAdmin, now)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// ListByCompany returns the company's users, capped at limit rows
// (0 = no cap).
func (s *UserService) ListByCompany(ctx context.Context, companyID string, limit int) ([]model.User, error) {
	query := `SELECT id, company_id, email, first_name, last_name, is_admin, created_at, updated_at
		 FROM users WHERE company_id = $1 ORDER BY last_name, first_name`
	args := []any{companyID}
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Email, &u.FirstName, &u.LastName,
			&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *UserService) GetByID(ctx context.Context, companyID, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, company_id, email, first_name, last_name, is_admin, created_at, updated_at
		 FROM users WHERE id = $1 AND company_id = $2`, id, companyID,
	).Scan(&u.ID, &u.CompanyID, &u.Email, &u.FirstName, &u.LastName,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, notFoundOr(err))
	}
	return &u, nil
}

var userColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// Update applies a partial update to a user within the company and
// returns the updated row.
func (s *UserService) Update(ctx context.Context, companyID, id string, fields []db.Field) (*model.User, error) {
	clause, values, err := db.BuildPartialUpdate(fields, userColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = now() WHERE id = $%d AND company_id = $%d
		 RETURNING id, company_id, email, first_name, last_name, is_admin, created_at, updated_at`,
		clause, len(values)+1, len(values)+2)

	var u model.User
	err = s.db.QueryRow(ctx, query, append(values, id, companyID)...).Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.FirstName, &u.LastName,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, notFoundOr(err))
	}
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, companyID, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
