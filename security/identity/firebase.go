package identity

import (
	"context"
	"errors"
	"net/http"

	"github.com/careercode/jobportal/ecode"
	jwtstd "github.com/golang-jwt/jwt/v5"
)

const firebaseIssuerPrefix = "https://securetoken.google.com/"

// FirebaseVerifier checks Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	projectID string
	keys      *keySet
	parser    *jwtstd.Parser
}

// NewFirebaseVerifier creates a verifier for projectID. certURL and client may be zero.
func NewFirebaseVerifier(projectID, certURL string, client *http.Client) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id is required")
	}
	return &FirebaseVerifier{
		projectID: projectID,
		keys:      newKeySet(certURL, client),
		parser: jwtstd.NewParser(
			jwtstd.WithValidMethods([]string{jwtstd.SigningMethodRS256.Alg()}),
			jwtstd.WithAudience(projectID),
			jwtstd.WithIssuer(firebaseIssuerPrefix+projectID),
			jwtstd.WithIssuedAt(),
			jwtstd.WithExpirationRequired(),
		),
	}, nil
}

// keyFetchError marks failures reaching the key endpoint.
type keyFetchError struct{ err error }

func (e *keyFetchError) Error() string { return e.err.Error() }
func (e *keyFetchError) Unwrap() error { return e.err }

// Verify implements Verifier.
func (v *FirebaseVerifier) Verify(ctx context.Context, header string) (*Identity, error) {
	raw, err := ParseBearer(header)
	if err != nil {
		return nil, err
	}

	claims := jwtstd.MapClaims{}
	_, err = v.parser.ParseWithClaims(raw, claims, func(t *jwtstd.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no kid header")
		}
		key, err := v.keys.key(ctx, kid)
		if err != nil {
			if errors.Is(err, errUnknownKid) {
				return nil, err
			}
			return nil, &keyFetchError{err: err}
		}
		return key, nil
	})
	if err != nil {
		var fetchErr *keyFetchError
		if errors.As(err, &fetchErr) {
			return nil, ecode.Wrap(ecode.ServiceUnavailable, "identity issuer unavailable", fetchErr.err)
		}
		return nil, ecode.Wrap(ecode.NoLogin, "invalid identity token", err)
	}
	return fromClaims(claims)
}
