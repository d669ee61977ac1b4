package models

import "github.com/golang-jwt/jwt/v5"

// APIClaims carries the identity embedded in issued access tokens. The client
// name travels in the registered subject claim.
type APIClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
