package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "harold", cfg.Tracking.Affiliate)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: 9000
admin:
  user: file-user
  password: file-pass
tracking:
  ip_hash_salt: file-salt
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("ADMIN_PASS", "env-pass")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "file-user", cfg.Admin.User)
	assert.Equal(t, "env-pass", cfg.Admin.Password)
	assert.Equal(t, "file-salt", cfg.Tracking.IPHashSalt)
	// 文件中未出现的字段保留默认值
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [1, 2"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
