package scope

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("jwt secret is required")
	ErrInvalidToken  = errors.New("invalid token")
)

// Payload is the verified identity carried by an access token.
type Payload struct {
	UserID string
	Role   string
}

// Manager issues and verifies access tokens.
type Manager interface {
	Verify(token string) (Payload, error)
	CreateToken(payload Payload, ttl time.Duration) (string, error)
}

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

type implManager struct {
	secret []byte
}

// New creates an HS256 token manager.
func New(secret string) (Manager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &implManager{secret: []byte(secret)}, nil
}

// CreateToken signs a token for payload. Used by tests and operator tooling;
// session management itself lives outside this service.
func (m *implManager) CreateToken(payload Payload, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: payload.Role,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *implManager) Verify(tokenString string) (Payload, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || c.Subject == "" {
		return Payload{}, ErrInvalidToken
	}

	return Payload{UserID: c.Subject, Role: c.Role}, nil
}
