package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stylesyncapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY_FILE", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
}

func TestResolveGeminiAPIKeySecretFileWins(t *testing.T) {
	clearCredentialEnv(t)
	path := filepath.Join(t.TempDir(), "gemini_key")
	require.NoError(t, os.WriteFile(path, []byte("file-key\n"), 0o600))
	t.Setenv("GEMINI_API_KEY_FILE", path)
	t.Setenv("GEMINI_API_KEY", "env-key")

	key, source, err := ResolveGeminiAPIKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "file-key", key)
	assert.Equal(t, CredentialSourceSecretFile, source)
}

func TestResolveGeminiAPIKeyEnvironment(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")

	key, source, err := ResolveGeminiAPIKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "google-key", key)
	assert.Equal(t, CredentialSourceEnvironment, source)
}

func TestResolveGeminiAPIKeyInteractive(t *testing.T) {
	clearCredentialEnv(t)

	key, source, err := ResolveGeminiAPIKey(strings.NewReader("typed-key\n"))
	require.NoError(t, err)
	assert.Equal(t, "typed-key", key)
	assert.Equal(t, CredentialSourceInteractive, source)
}

func TestResolveGeminiAPIKeyMissing(t *testing.T) {
	clearCredentialEnv(t)

	_, _, err := ResolveGeminiAPIKey(strings.NewReader("\n"))
	assert.ErrorIs(t, err, models.ErrNoCredential)
}
