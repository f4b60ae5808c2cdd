package config

import (
	"time"

	"github.com/spf13/viper"
)

// Auth providers
const (
	AuthProviderFirebase = "firebase"
	AuthProviderHMAC     = "hmac"
)

// Auth identity verification settings
type Auth struct {
	Provider string
	Firebase *Firebase
	HMAC     *HMAC
}

// Firebase ID token settings
type Firebase struct {
	ProjectID string
	CertURL   string
}

// HMAC shared-secret token settings
type HMAC struct {
	Secret      string
	Issuer      string
	TokenExpire time.Duration
}

func getAuthConfig(v *viper.Viper) *Auth {
	return &Auth{
		Provider: v.GetString("auth.provider"),
		Firebase: &Firebase{
			ProjectID: v.GetString("auth.firebase.project_id"),
			CertURL:   v.GetString("auth.firebase.cert_url"),
		},
		HMAC: &HMAC{
			Secret:      v.GetString("auth.hmac.secret"),
			Issuer:      v.GetString("auth.hmac.issuer"),
			TokenExpire: getDurationOrDefault(v, "auth.hmac.token_expire", 24*time.Hour),
		},
	}
}
