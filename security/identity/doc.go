// Package identity verifies bearer tokens and yields the caller's Identity.
//
// Two verifiers are provided. FirebaseVerifier checks Firebase Authentication
// ID tokens (RS256) against Google's published certificates, caching them for
// the max-age the endpoint advertises. HMACVerifier checks HS256 tokens signed
// with a shared secret and can mint them, which is handy for local runs:
//
//	v, _ := identity.NewHMACVerifier("dev-secret", "")
//	token, _ := v.Mint("uid-1", "hr@acme.io", true, time.Hour)
//	id, err := v.Verify(ctx, "Bearer "+token)
//
// Every rejection is an *ecode.Error with code ecode.NoLogin, except an
// unreachable certificate endpoint, which reports ecode.ServiceUnavailable.
package identity
