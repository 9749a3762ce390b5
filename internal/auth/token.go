package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrMissingCredential signals an absent Authorization header.
var ErrMissingCredential = errors.New("missing bearer credential")

// ErrInvalidCredential signals a malformed or unverifiable credential.
var ErrInvalidCredential = errors.New("invalid bearer credential")

// TokenManager verifies bearer credentials issued by the identity provider
// and extracts the caller's email. Token internals are never interpreted
// beyond the email claim.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload consumed by this service.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken signs a credential for the given email. Used by tests and
// local development; production tokens come from the identity provider.
func (tm *TokenManager) GenerateToken(email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyHeader resolves an Authorization header value into a verified
// email. It is the entire identity-provider boundary.
func (tm *TokenManager) VerifyHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidCredential
	}
	claims, err := tm.parseToken(parts[1])
	if err != nil {
		return "", ErrInvalidCredential
	}
	if claims.Email == "" {
		return "", ErrInvalidCredential
	}
	return claims.Email, nil
}

func (tm *TokenManager) parseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
