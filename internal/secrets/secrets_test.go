// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "  ak_abc123  \n")
				writeFile(t, dir, "synapse-token", "tok\n")
				return dir
			},
			want: map[string]string{
				"anthropic-api-key": "ak_abc123",
				"synapse-token":     "tok",
			},
		},
		{
			name: "missing directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files, dotfiles, and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "   \n\t")
				writeFile(t, dir, ".hidden-key", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"anthropic-api-key": "valid-key",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadEnv(filepath.Join(dir, ".env")))

	t.Setenv("DCA_GRAPH_TEST_SET", "kept")
	writeFile(t, dir, ".env", "DCA_GRAPH_TEST_NEW=fromfile\nDCA_GRAPH_TEST_SET=overridden\n")
	t.Cleanup(func() { os.Unsetenv("DCA_GRAPH_TEST_NEW") })

	require.NoError(t, LoadEnv(filepath.Join(dir, ".env")))
	assert.Equal(t, "fromfile", os.Getenv("DCA_GRAPH_TEST_NEW"))
	assert.Equal(t, "kept", os.Getenv("DCA_GRAPH_TEST_SET"))
}

func TestAnthropicKey(t *testing.T) {
	files := map[string]string{AnthropicKeyFile: "from-file"}

	t.Setenv(AnthropicKeyEnv, "")
	assert.Equal(t, "from-file", AnthropicKey("", files))
	assert.Equal(t, "", AnthropicKey("", nil))

	t.Setenv(AnthropicKeyEnv, "from-env")
	assert.Equal(t, "from-env", AnthropicKey("", files))
	assert.Equal(t, "configured", AnthropicKey("configured", files))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
