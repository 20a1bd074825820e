package model

import "github.com/golang-jwt/jwt/v5"

// Claims is the decoded payload of a verified identity token. It is
// request-scoped: the auth middleware stores it in the request context
// and it is discarded when the request ends.
type Claims struct {
	UserID    string `json:"user_id"`
	IsAdmin   bool   `json:"is_admin"`
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}
