// Package auth verifies bearer tokens issued by the external identity
// provider and extracts the caller's identity from them.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the identity-provider token payload.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	// Subject is the stable identifier used as the owner key everywhere.
	Subject string
	// Username is the display name from the token.
	Username string
	// Email is the contact address from the token.
	Email string
}

// Verifier validates tokens signed with the shared HMAC secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the token string and returns the caller's
// identity. Tokens signed with anything but HMAC are rejected.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		Subject:  claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
