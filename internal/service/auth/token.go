package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, forged and expired session tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Session is the explicit session surface: two role flags plus the
// remembered company id and name. Nothing else is carried client-side,
// and no component outside this package mints or parses tokens.
type Session struct {
	SuperAdmin  bool   `json:"superAdmin"`
	Admin       bool   `json:"admin"`
	CompanyID   string `json:"companyId,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

type sessionClaims struct {
	SuperAdmin  bool   `json:"spa"`
	Admin       bool   `json:"adm"`
	CompanyID   string `json:"cid,omitempty"`
	CompanyName string `json:"cnm,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens with a shared HMAC secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager for the given secret and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Mint issues a signed token carrying the session.
func (m *TokenManager) Mint(session Session, now time.Time) (string, error) {
	claims := sessionClaims{
		SuperAdmin:  session.SuperAdmin,
		Admin:       session.Admin,
		CompanyID:   session.CompanyID,
		CompanyName: session.CompanyName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and recovers its session.
func (m *TokenManager) Parse(tokenString string) (Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	return Session{
		SuperAdmin:  claims.SuperAdmin,
		Admin:       claims.Admin,
		CompanyID:   claims.CompanyID,
		CompanyName: claims.CompanyName,
	}, nil
}
