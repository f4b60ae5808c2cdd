package identity

import (
	"context"
	"strings"

	"github.com/careercode/jobportal/consts"
	"github.com/careercode/jobportal/ecode"
	jwtstd "github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller.
type Identity struct {
	UID           string         `json:"uid"`
	Email         string         `json:"email"`
	EmailVerified bool           `json:"email_verified"`
	Claims        map[string]any `json:"claims,omitempty"`
}

// Verifier turns an Authorization header into an Identity.
type Verifier interface {
	Verify(ctx context.Context, header string) (*Identity, error)
}

// ParseBearer extracts the token from "Bearer <token>".
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ecode.Unauthenticated("missing authorization header")
	}
	if !strings.HasPrefix(header, consts.BearerKey) {
		return "", ecode.Unauthenticated("authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(header[len(consts.BearerKey):])
	if token == "" {
		return "", ecode.Unauthenticated("empty bearer token")
	}
	return token, nil
}

// fromClaims builds an Identity; the email claim is mandatory.
func fromClaims(claims jwtstd.MapClaims) (*Identity, error) {
	sub := getString(claims, "sub")
	if sub == "" {
		return nil, ecode.Unauthenticated("token has no subject")
	}
	email := getString(claims, "email")
	if email == "" {
		return nil, ecode.Unauthenticated("token has no email claim")
	}
	return &Identity{
		UID:           sub,
		Email:         email,
		EmailVerified: getBool(claims, "email_verified"),
		Claims:        claims,
	}, nil
}

func getString(claims map[string]any, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getBool(claims map[string]any, key string) bool {
	if val, ok := claims[key].(bool); ok {
		return val
	}
	return false
}
