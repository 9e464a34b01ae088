package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	issued := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	token, err := NewAccessToken("secret", 30*time.Minute, "a@b.com", 9, RoleUser, issued)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(30*time.Minute), token.ExpiresAt)

	at := func(d time.Duration) func() time.Time {
		return func() time.Time { return issued.Add(d) }
	}

	claims, err := ParseAccessToken("secret", token.Token, at(29*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Subject)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)

	_, err = ParseAccessToken("secret", token.Token, at(31*time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = ParseAccessToken("other", token.Token, at(time.Minute))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	claims := TokenClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@b.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", unsigned, nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// no exp claim
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.com"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseAccessToken("secret", noExp, nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}

func TestGenerateTicketCode(t *testing.T) {
	now := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	a := GenerateTicketCode(now)
	b := GenerateTicketCode(now)
	assert.Regexp(t, `^TKT-20261201-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Email string `json:"email" validate:"required,email"`
		Count int    `json:"count" validate:"gt=0"`
		Kind  string `json:"kind" validate:"oneof=A B"`
	}

	errs := ValidateStruct(sample{Email: "nope", Count: 0, Kind: "C"})
	assert.Equal(t, "Invalid email format", errs["email"])
	assert.Equal(t, "Must be greater than 0", errs["count"])
	assert.Equal(t, "Must be one of: A, B", errs["kind"])
	assert.Equal(t,
		"count: Must be greater than 0; email: Invalid email format; kind: Must be one of: A, B",
		FormatValidationErrors(errs))

	assert.Empty(t, ValidateStruct(&sample{Email: "a@b.com", Count: 1, Kind: "A"}))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := GetPrincipalFromContext(context.Background())
	assert.False(t, ok)

	ctx := SetUserContext(context.Background(), Principal{UserID: 4, Email: "x@y.z", Role: RoleAdmin})
	p, ok := GetPrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(4), p.UserID)
	assert.True(t, p.IsAdmin())
}
