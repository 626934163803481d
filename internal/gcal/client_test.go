package gcal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Timezone: "America/Denver"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestTokenFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"abc","token_type":"Bearer"}`), 0o600))

	tok, err := tokenFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)

	_, err = tokenFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
