package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken   = errors.New("missing access token")
	ErrTokenMalformed = errors.New("invalid access token")
	ErrTokenExpired   = errors.New("access token expired")
)

const bearerPrefix = "Bearer "

// JWTManager signs and verifies session tokens with a shared HS256 secret.
// A zero TTL issues tokens without an exp claim.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// Claims carries the session identity. Email is the identity claim.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (m *JWTManager) Issue(email, name string) (string, error) {
	claims := &Claims{Email: email, Name: name}
	if m.TTL != 0 {
		now := time.Now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.TTL))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

// Parse verifies tokenStr and returns its claims.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !tkn.Valid || claims.Email == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// ParseBearer extracts and verifies the token of an Authorization header
// of the form "Bearer <token>".
func (m *JWTManager) ParseBearer(header string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingToken
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return nil, ErrTokenMalformed
	}
	return m.Parse(token)
}
