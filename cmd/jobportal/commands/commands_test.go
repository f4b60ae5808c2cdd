package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/careercode/jobportal/security/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hmacYAML = `
auth:
  provider: hmac
  hmac:
    secret: dev-secret
    issuer: jobportal-dev
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	path := writeConfig(t, hmacYAML)

	out, err := execute(t, "token", "-c", path, "--email", "hr@acme.io")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.NotEmpty(t, token)

	v, err := identity.NewHMACVerifier("dev-secret", "jobportal-dev")
	require.NoError(t, err)
	id, err := v.Verify(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.io", id.Email)
	assert.Equal(t, "hr@acme.io", id.UID)
	assert.True(t, id.EmailVerified)
}

func TestTokenCommandRejects(t *testing.T) {
	_, err := execute(t, "token", "-c", writeConfig(t, hmacYAML), "--email", "nope")
	assert.Error(t, err)

	firebase := "auth:\n  provider: firebase\n  firebase:\n    project_id: career-code\n"
	_, err = execute(t, "token", "-c", writeConfig(t, firebase), "--email", "hr@acme.io")
	assert.ErrorContains(t, err, "hmac")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"goVersion"`)
}
