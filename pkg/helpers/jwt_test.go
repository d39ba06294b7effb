package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse_RoundTrip(t *testing.T) {
	m := NewJWTManager("super-secret", 0)

	tok, err := m.Issue("alice@example.com", "Alice")
	require.NoError(t, err)

	claims, err := m.ParseBearer("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Nil(t, claims.ExpiresAt)
}

func TestIssue_WithTTLSetsExpiry(t *testing.T) {
	m := NewJWTManager("k", time.Hour)

	tok, err := m.Issue("a@b.c", "A")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParse_Expired(t *testing.T) {
	m := NewJWTManager("k", -time.Second)

	tok, err := m.Issue("a@b.c", "A")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := NewJWTManager("right", 0).Issue("a@b.c", "A")
	require.NoError(t, err)

	_, err = NewJWTManager("wrong", 0).Parse(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{Email: "a@b.c"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewJWTManager("k", 0).Parse(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParse_RequiresEmailClaim(t *testing.T) {
	m := NewJWTManager("k", 0)
	tok, err := m.Issue("", "nobody")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseBearer_HeaderShapes(t *testing.T) {
	m := NewJWTManager("k", 0)
	tok, err := m.Issue("a@b.c", "A")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{name: "missing", header: "", want: ErrMissingToken},
		{name: "no prefix", header: tok, want: ErrTokenMalformed},
		{name: "lowercase scheme", header: "bearer " + tok, want: ErrTokenMalformed},
		{name: "empty token", header: "Bearer ", want: ErrTokenMalformed},
		{name: "garbage", header: "Bearer not.a.jwt", want: ErrTokenMalformed},
		{name: "short header", header: "Bear", want: ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ParseBearer(tt.header)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIssue_ClaimsAreEmailAndNameOnly(t *testing.T) {
	tok, err := NewJWTManager("k", 0).Issue("a@b.c", "A")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.c","name":"A"}`, string(payload))
}
