package core

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quotehub/quotehub/internal/model"
)

// TokenService issues and verifies identity tokens. The signing secret
// is process-wide configuration injected at construction; there is no
// key rotation or revocation.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue creates a signed HS256 token for the user. The claims carry the
// user id, the admin flag (false unless the record sets it), the company
// id, and the issuance time. Tokens do not expire; iat only.
func (s *TokenService) Issue(user *model.User) (string, error) {
	claims := model.Claims{
		UserID:    user.ID,
		IsAdmin:   user.IsAdmin,
		CompanyID: user.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims. It rejects
// malformed input, wrong signing algorithms, bad signatures, and expired
// tokens. Callers decide what a failure means; the auth middleware
// treats any error here as "no identity".
func (s *TokenService) Verify(tokenStr string) (*model.Claims, error) {
	var claims model.Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("verify token: invalid")
	}
	return &claims, nil
}
