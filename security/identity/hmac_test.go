package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careercode/jobportal/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACMintAndVerify(t *testing.T) {
	v, err := NewHMACVerifier("dev-secret", "jobportal")
	require.NoError(t, err)

	token, err := v.Mint("uid-7", "seeker@mail.io", true, time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "uid-7", id.UID)
	assert.Equal(t, "seeker@mail.io", id.Email)
	assert.True(t, id.EmailVerified)
	assert.Equal(t, "jobportal", id.Claims["iss"])
}

func TestHMACRejects(t *testing.T) {
	v, err := NewHMACVerifier("dev-secret", "")
	require.NoError(t, err)
	other, err := NewHMACVerifier("another-secret", "")
	require.NoError(t, err)

	foreign, err := other.Mint("uid", "a@b.c", false, time.Hour)
	require.NoError(t, err)
	noEmail, err := v.Mint("uid", "", false, time.Hour)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":       "",
		"wrong scheme":  "Token abc",
		"garbage":       "Bearer not.a.jwt",
		"wrong secret":  "Bearer " + foreign,
		"missing email": "Bearer " + noEmail,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), header)
			assert.True(t, errors.Is(err, ecode.ErrUnauthenticated), "got %v", err)
		})
	}
}

func TestNewHMACVerifierNeedsSecret(t *testing.T) {
	_, err := NewHMACVerifier("", "")
	assert.ErrorIs(t, err, ErrNeedSecret)
}

func TestParseBearer(t *testing.T) {
	tok, err := ParseBearer("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)
}
