package middleware

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aljaz-ferenc/budget-app/models"
)

// Signing secret and token lifetime, set once from main before the router
// starts serving.
var (
	JWTSecret string
	TokenTTL  = 24 * time.Hour
)

// IssueToken signs a session token encoding the user identifier.
func IssueToken(userID string) (string, error) {
	if JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(JWTSecret))
}

// ParseToken verifies signature, algorithm and expiry, returning the claims.
func ParseToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if JWTSecret == "" {
			return nil, fmt.Errorf("JWT secret not configured")
		}
		return []byte(JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
