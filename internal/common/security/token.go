package security

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the fixed shape of a fintrack token payload. Subject carries the
// stringified numeric user id; "0" is reserved for the super-admin.
type Claims struct {
	Name    string
	Email   string
	Role    string
	Subject string
}

// Codec signs and verifies bearer tokens with a single symmetric key.
// Construction-time configuration only; no globals.
type Codec struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewCodec(key []byte, ttl time.Duration) *Codec {
	return &Codec{
		auth: jwtauth.New("HS256", key, nil),
		ttl:  ttl,
	}
}

func (c *Codec) Encode(cl Claims) (string, error) {
	now := time.Now()
	payload := jwt.MapClaims{
		"username": cl.Name,
		"email":    cl.Email,
		"role":     cl.Role,
		"sub":      cl.Subject,
		"iat":      now.Unix(),
		"exp":      now.Add(c.ttl).Unix(),
	}
	_, tokenString, err := c.auth.Encode(payload)
	if err != nil {
		return "", fmt.Errorf("security.Codec.Encode: %w", err)
	}
	return tokenString, nil
}

// Decode verifies the signature, algorithm and expiry of tokenString and
// returns its claims. Any failure is reported as ErrUnauthenticated.
func (c *Codec) Decode(ctx context.Context, tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(c.auth, tokenString)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	raw, err := token.AsMap(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}

	return Claims{
		Name:    stringClaim(raw, "username"),
		Email:   stringClaim(raw, "email"),
		Role:    stringClaim(raw, "role"),
		Subject: stringClaim(raw, "sub"),
	}, nil
}

func stringClaim(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}
