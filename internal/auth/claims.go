package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for the console.
//
// This is a session placeholder, not a security boundary: the console trusts
// whoever issued the token. CompanyID is required for all activity because
// every backend resource is company-scoped.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}
