package scope

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerify(t *testing.T) {
	m, err := New("secret", "calendar-assistant")
	require.NoError(t, err)

	tok, err := m.CreateToken(Payload{UserID: "u-1", Username: "alice"}, time.Hour)
	require.NoError(t, err)

	p, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Payload{UserID: "u-1", Username: "alice"}, p)
}

func TestVerifyRejects(t *testing.T) {
	m, err := New("secret", "calendar-assistant")
	require.NoError(t, err)
	other, err := New("other-secret", "calendar-assistant")
	require.NoError(t, err)
	wrongIssuer, err := New("secret", "someone-else")
	require.NoError(t, err)

	valid, err := m.CreateToken(Payload{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)
	expired, err := m.CreateToken(Payload{UserID: "u-1"}, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.CreateToken(Payload{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)
	otherIssuer, err := wrongIssuer.CreateToken(Payload{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u-1",
		Issuer:    "calendar-assistant",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"expired":      expired,
		"wrong secret": foreign,
		"wrong issuer": otherIssuer,
		"alg none":     unsigned,
		"tampered":     valid[:len(valid)-2] + "xx",
	}

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("", "x")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
