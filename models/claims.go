package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of a session token: the registered claims plus the
// identifier of the user the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}
