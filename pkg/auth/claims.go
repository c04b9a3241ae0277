package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID string
	Role   enums.AdminRole
	JTI    string
}

// AccessTokenClaims represents the typed JWT presented by back-office clients.
type AccessTokenClaims struct {
	UserID string          `json:"user_id"`
	Role   enums.AdminRole `json:"role"`
	jwt.RegisteredClaims
}
