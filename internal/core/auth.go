package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quotehub/quotehub/internal/model"
)

type AuthService struct {
	db     DB
	tokens *TokenService
}

func NewAuthService(db DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

type RegisterParams struct {
	CompanyName string
	Email       string
	Password    string
	FirstName   string
	LastName    string
}

// Register creates a company and its initial admin user in a single
// transaction, and returns a token for the new user.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (string, *model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		CompanyID:    uuid.NewString(),
		Email:        p.Email,
		PasswordHash: string(hash),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("begin register: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO companies (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)`, user.CompanyID, p.CompanyName, now)
	if err != nil {
		return "", nil, fmt.Errorf("create company: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, company_id, email, password_hash, first_name, last_name, is_admin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		user.ID, user.CompanyID, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.IsAdmin, now)
	if err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", nil, fmt.Errorf("commit register: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login authenticates a user by email and password, returning a token on
// success. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	var user model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, company_id, email, password_hash, first_name, last_name, is_admin, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.CompanyID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
