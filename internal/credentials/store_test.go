package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv(EnvToken, "")
	s, err := NewStore(filepath.Join(t.TempDir(), "aula", "token"))
	require.NoError(t, err)
	return s
}

func TestStore_SaveTokenRemove(t *testing.T) {
	s := newTestStore(t)

	tok, src := s.Token()
	assert.Empty(t, tok)
	assert.Equal(t, SourceNone, src)

	require.NoError(t, s.Save("  abc123\n"))
	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, src = s.Token()
	assert.Equal(t, "abc123", tok)
	assert.Equal(t, SourceFile, src)

	removed, err := s.Remove()
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove()
	require.NoError(t, err)
	assert.False(t, removed, "second logout finds nothing to remove")
}

func TestStore_EnvTakesPrecedence(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("from-file"))

	t.Setenv(EnvToken, "from-env")
	tok, src := s.Token()
	assert.Equal(t, "from-env", tok)
	assert.Equal(t, SourceEnv, src)
}

func TestStore_BlankFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("  \n"), 0o600))

	tok, src := s.Token()
	assert.Empty(t, tok)
	assert.Equal(t, SourceNone, src)
}

func TestStore_SaveRejectsEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Save("   "))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/.aula/token", filepath.Join(home, ".aula", "token")},
		{"~", home},
		{"/etc/aula/token", "/etc/aula/token"},
		{"relative/token", "relative/token"},
		{"~other/token", "~other/token"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ExpandHome(%q)", tt.in)
	}
}
