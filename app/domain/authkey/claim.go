package authkey

import "github.com/golang-jwt/jwt/v5"

// ApiKeyClaims is the signed token payload. ApiKeyVersion is compared
// against the user's stored version on every validation; bumping the
// stored version revokes every previously issued token at once.
type ApiKeyClaims struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ApiKeyVersion int    `json:"apiKeyVersion"`
	jwt.RegisteredClaims
}
