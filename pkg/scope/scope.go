// Package scope verifies session tokens and turns them into caller identity.
package scope

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("scope: invalid token")
	ErrMissingSecret = errors.New("scope: secret is required")
)

// Payload is the identity carried by a session token.
type Payload struct {
	UserID   string
	Username string
}

// Manager creates and verifies session tokens.
type Manager interface {
	Verify(token string) (Payload, error)
	CreateToken(payload Payload, ttl time.Duration) (string, error)
}

type claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type manager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// New creates an HS256 Manager.
func New(secret, issuer string) (Manager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &manager{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

func (m *manager) CreateToken(payload Payload, ttl time.Duration) (string, error) {
	if payload.UserID == "" {
		return "", fmt.Errorf("scope.CreateToken: empty user id")
	}
	now := m.now()
	c := claims{
		Username: payload.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("scope.CreateToken: %w", err)
	}
	return signed, nil
}

func (m *manager) Verify(token string) (Payload, error) {
	if token == "" {
		return Payload{}, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return Payload{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Payload{UserID: c.Subject, Username: c.Username}, nil
}
