package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aulaschool/aula/pkg/domain"
)

// isolate keeps the developer's own .aula.yaml and AULA_* variables out of a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, kv := range os.Environ() {
		if k, _, _ := strings.Cut(kv, "="); strings.HasPrefix(k, "AULA_") {
			t.Setenv(k, "")
			os.Unsetenv(k) //nolint:errcheck
		}
	}
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "aula.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Zero(t, cfg.API.SchoolID)
	assert.Equal(t, "~/.aula/token", cfg.Session.TokenFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 5*time.Second, cfg.Chat.PollInterval)
	assert.Equal(t, domain.DefaultRoles, cfg.Roles.RoleSet())
	assert.True(t, cfg.Output.Colors)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
api:
  base_url: https://staging.aula.school
  school_id: 12
logging:
  level: debug
  format: json
chat:
  poll_interval: 2s
roles:
  teacher: [2]
  student: [3, 6]
output:
  colors: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.aula.school", cfg.API.BaseURL)
	assert.Equal(t, int64(12), cfg.API.SchoolID)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Chat.PollInterval)
	assert.Equal(t, domain.RoleSet{Teacher: []int64{2}, Student: []int64{3, 6}}, cfg.Roles.RoleSet())
	assert.False(t, cfg.Output.Colors)
}

func TestLoad_SearchPath(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".aula.yaml"), []byte("api:\n  school_id: 7\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.API.SchoolID)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "api:\n  school_id: 12\nchat:\n  poll_interval: 2s\n")
	t.Setenv("AULA_API_SCHOOL_ID", "99")
	t.Setenv("AULA_CHAT_POLL_INTERVAL", "30s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.API.SchoolID)
	assert.Equal(t, 30*time.Second, cfg.Chat.PollInterval)
}

func TestLoadWith_OverrideWins(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "api:\n  school_id: 12\n")
	t.Setenv("AULA_API_SCHOOL_ID", "99")

	v := viper.New()
	v.Set("api.school_id", 3)
	cfg, err := LoadWith(v, path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.API.SchoolID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad url", "api:\n  base_url: not a url\n", "api.base_url"},
		{"bad level", "logging:\n  level: loud\n", "invalid logging.level: loud"},
		{"bad format", "logging:\n  format: xml\n", "must be one of text, json"},
		{"poll too fast", "chat:\n  poll_interval: 100ms\n", "chat.poll_interval must be at least 1s"},
		{"no teacher roles", "roles:\n  teacher: []\n", "roles.teacher must be at least 1"},
		{"negative school", "api:\n  school_id: -1\n", "api.school_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			_, err := Load(writeConfig(t, dir, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(writeConfig(t, dir, "api: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}
