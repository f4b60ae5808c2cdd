package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/security/identity"
)

// NewVerifier builds the identity verifier for the configured provider.
func NewVerifier(cfg *config.Auth) (identity.Verifier, error) {
	switch cfg.Provider {
	case config.AuthProviderFirebase:
		client := &http.Client{Timeout: 10 * time.Second}
		v, err := identity.NewFirebaseVerifier(cfg.Firebase.ProjectID, cfg.Firebase.CertURL, client)
		if err != nil {
			return nil, err
		}
		return v, nil
	case config.AuthProviderHMAC:
		v, err := identity.NewHMACVerifier(cfg.HMAC.Secret, cfg.HMAC.Issuer)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}
