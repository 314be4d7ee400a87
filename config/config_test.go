package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig("")

	assert.Equal(t, "tinymart", cfg.System.Appid)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1880, cfg.Web.Port)
	assert.Equal(t, "/var/tinymart/logs", cfg.GetLogDir())
	assert.Empty(t, cfg.Cloudinary.Name)
}

func TestLoadConfig_YamlFile(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "tinymart.yml")
	content := `
web:
  host: 192.168.1.10
  port: 8080
cloudinary:
  name: my-cloud
  api_key: my-key
  upload_preset: my-preset
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0644))

	cfg := LoadConfig(cfile)

	assert.Equal(t, "192.168.1.10", cfg.Web.Host)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "my-cloud", cfg.Cloudinary.Name)
	assert.Equal(t, "my-key", cfg.Cloudinary.ApiKey)
	assert.Equal(t, "my-preset", cfg.Cloudinary.UploadPreset)
	// untouched sections keep their defaults
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TINYMART_WEB_PORT", "9999")
	t.Setenv("TINYMART_DB_HOST", "db.internal")
	t.Setenv("TINYMART_SYSTEM_DEBUG", "on")
	t.Setenv("TINYMART_CLOUDINARY_NAME", "env-cloud")

	cfg := LoadConfig("")

	assert.Equal(t, 9999, cfg.Web.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.System.Debug)
	assert.Equal(t, "env-cloud", cfg.Cloudinary.Name)
}

func TestLoadConfig_BadEnvIntIgnored(t *testing.T) {
	t.Setenv("TINYMART_WEB_PORT", "not-a-port")

	cfg := LoadConfig("")

	assert.Equal(t, 1880, cfg.Web.Port)
}
