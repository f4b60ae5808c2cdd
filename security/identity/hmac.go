package identity

import (
	"context"
	"errors"
	"time"

	"github.com/careercode/jobportal/ecode"
	jwtstd "github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpire is the lifetime of minted development tokens.
const DefaultTokenExpire = time.Hour * 24

// ErrNeedSecret is returned when no signing secret is configured.
var ErrNeedSecret = errors.New("cannot sign or verify tokens without a secret")

// HMACVerifier verifies and mints HS256 tokens with a shared secret.
type HMACVerifier struct {
	key    []byte
	issuer string
	parser *jwtstd.Parser
}

// NewHMACVerifier creates an HS256 verifier. issuer may be empty.
func NewHMACVerifier(secret, issuer string) (*HMACVerifier, error) {
	if secret == "" {
		return nil, ErrNeedSecret
	}
	opts := []jwtstd.ParserOption{
		jwtstd.WithValidMethods([]string{jwtstd.SigningMethodHS256.Alg()}),
		jwtstd.WithExpirationRequired(),
		jwtstd.WithIssuedAt(),
	}
	if issuer != "" {
		opts = append(opts, jwtstd.WithIssuer(issuer))
	}
	return &HMACVerifier{key: []byte(secret), issuer: issuer, parser: jwtstd.NewParser(opts...)}, nil
}

// Verify implements Verifier.
func (v *HMACVerifier) Verify(_ context.Context, header string) (*Identity, error) {
	raw, err := ParseBearer(header)
	if err != nil {
		return nil, err
	}
	claims := jwtstd.MapClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, func(*jwtstd.Token) (any, error) {
		return v.key, nil
	}); err != nil {
		return nil, ecode.Wrap(ecode.NoLogin, "invalid identity token", err)
	}
	return fromClaims(claims)
}

// Mint signs a token for uid/email valid for expire (DefaultTokenExpire when zero).
func (v *HMACVerifier) Mint(uid, email string, emailVerified bool, expire time.Duration) (string, error) {
	if expire <= 0 {
		expire = DefaultTokenExpire
	}
	now := time.Now()
	claims := jwtstd.MapClaims{
		"sub":            uid,
		"email":          email,
		"email_verified": emailVerified,
		"iat":            now.Unix(),
		"exp":            now.Add(expire).Unix(),
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}
	return jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims).SignedString(v.key)
}
