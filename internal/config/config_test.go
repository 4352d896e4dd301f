package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heavygym.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DriverSQLite, c.ProfileStore)
	assert.Equal(t, 10*time.Second, c.CallTimeout)
	assert.Equal(t, 7*24*time.Hour, c.SessionTTL)
	assert.False(t, c.RequireTrainingProfile)
	assert.NoError(t, c.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `{
		"sqlite_path": "from-file.db",
		"call_timeout": "3s",
		"webhook_url": "https://hooks.example.com/file",
		"require_training_profile": true
	}`)

	cfg, err := Load([]string{"-config", path}, env(map[string]string{
		"HEAVYGYM_WEBHOOK_URL": "https://hooks.example.com/env",
	}))
	require.NoError(t, err)

	assert.Equal(t, "from-file.db", cfg.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.CallTimeout)
	assert.Equal(t, "https://hooks.example.com/env", cfg.WebhookURL)
	assert.True(t, cfg.RequireTrainingProfile)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL, "keys absent from the file keep defaults")
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, `{"profile_store": "postgres", "postgres_dsn": "postgres://localhost/heavygym"}`)

	cfg, err := Load(nil, env(map[string]string{"HEAVYGYM_CONFIG": path}))
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.ProfileStore)
}

func TestLoad_Errors(t *testing.T) {
	badJSON := writeConfig(t, `{"call_timeout": `)
	badDuration := writeConfig(t, `{"call_timeout": "soon"}`)

	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr error
	}{
		{name: "unknown flag", args: []string{"-x"}},
		{name: "missing file", args: []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{name: "bad json", args: []string{"-c", badJSON}},
		{name: "bad file duration", args: []string{"-c", badDuration}},
		{name: "bad env duration", env: map[string]string{"HEAVYGYM_CALL_TIMEOUT": "10"}},
		{name: "bad bool", env: map[string]string{"HEAVYGYM_REQUIRE_TRAINING_PROFILE": "ja"}},
		{name: "bad slow query", env: map[string]string{"HEAVYGYM_SLOW_QUERY_MS": "fast"}},
		{name: "unknown driver", env: map[string]string{"HEAVYGYM_PROFILE_STORE": "mysql"}, wantErr: ErrUnknownDriver},
		{name: "postgres without dsn", env: map[string]string{"HEAVYGYM_PROFILE_STORE": "postgres"}, wantErr: ErrMissingDSN},
		{name: "unknown log format", env: map[string]string{"HEAVYGYM_LOG_FORMAT": "xml"}, wantErr: ErrUnknownLogFormat},
		{name: "zero timeout", env: map[string]string{"HEAVYGYM_CALL_TIMEOUT": "0s"}, wantErr: ErrNonPositive},
		{name: "production with dev key", env: map[string]string{"HEAVYGYM_ENV": "production"}, wantErr: ErrWeakSigningKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, env(tt.env))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ProductionWithStrongKey(t *testing.T) {
	cfg, err := Load(nil, env(map[string]string{
		"HEAVYGYM_ENV":     "production",
		"HEAVYGYM_JWT_KEY": "0123456789abcdef0123456789abcdef",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
