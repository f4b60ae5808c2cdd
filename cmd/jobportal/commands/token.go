package commands

import (
	"fmt"
	"time"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/security/identity"
	"github.com/careercode/jobportal/validation/validator"
	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command, which mints HS256 tokens for
// local development against the hmac provider.
func NewTokenCommand(configFile *string) *cobra.Command {
	var (
		uid           string
		email         string
		emailVerified bool
		expire        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validator.IsEmail(email) {
				return fmt.Errorf("--email must be a valid email address")
			}
			cfg, err := config.LoadConfig(*configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Auth.Provider != config.AuthProviderHMAC {
				return fmt.Errorf("token minting needs auth.provider %q, got %q", config.AuthProviderHMAC, cfg.Auth.Provider)
			}
			v, err := identity.NewHMACVerifier(cfg.Auth.HMAC.Secret, cfg.Auth.HMAC.Issuer)
			if err != nil {
				return err
			}
			if uid == "" {
				uid = email
			}
			if expire <= 0 {
				expire = cfg.Auth.HMAC.TokenExpire
			}
			token, err := v.Mint(uid, email, emailVerified, expire)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "subject claim (defaults to the email)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().BoolVar(&emailVerified, "email-verified", true, "email_verified claim")
	cmd.Flags().DurationVar(&expire, "expire", 0, "token lifetime (defaults to auth.hmac.token_expire)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
