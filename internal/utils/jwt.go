package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrMissingSubject is returned for tokens that do not name a user
var ErrMissingSubject = errors.New("token has no subject")

// JWT Claims, the user ID travels in the standard "sub" claim
type Claims struct {
	Email                string `json:"email"` // Custom claim for the user's email
	jwt.RegisteredClaims                       // Standard JWT claims
}

// GenerateJWT creates a signed token for a user, valid for ttl
func GenerateJWT(userID, email, secret string, ttl time.Duration) (string, error) {
	now := time.Now() // Single reference instant
	// Set token claims
	claims := Claims{
		Email: email, // Custom claim for email
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,                           // Who the token is for
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid // Return error if token is invalid
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject // Token does not identify a user
	}
	return claims, nil
}
