package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err) // an explicit path must exist

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "smartrecipe", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxFileSize)
	assert.True(t, cfg.RateLimit.Enable)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  name: testapp
  environment: production
server:
  port: 9000
database:
  driver: sqlite
  database: test.db
auth:
  jwt_secret: file-secret
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testapp", cfg.App.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "test.db", cfg.GetDSN())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SMARTRECIPE_SERVER_PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Name: "smartrecipe", Environment: "development"},
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "postgres", Database: "smartrecipe"},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.App.Name = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Database = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.App.Environment = "production"
	assert.Error(t, cfg.Validate())
	cfg.Auth.JWTSecret = "set"
	assert.NoError(t, cfg.Validate())
}

func TestGetDSNPostgres(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver:   "postgres",
		Host:     "db.internal",
		Port:     5432,
		Username: "app",
		Password: "pw",
		Database: "smartrecipe",
		SSLMode:  "disable",
	}}
	assert.Equal(t,
		"host=db.internal port=5432 user=app password=pw dbname=smartrecipe sslmode=disable",
		cfg.GetDSN(),
	)
}
