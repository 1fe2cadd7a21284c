// Package credentials persists the bearer token between CLI runs. The API
// client never touches it: callers load a token here and hand it to a
// client.Session.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnvToken overrides the token file when set.
const EnvToken = "AULA_TOKEN"

// Source says where a token came from.
type Source string

const (
	SourceNone Source = ""
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// Store reads and writes the token file.
type Store struct {
	path string
}

// NewStore returns a store for path. A leading "~/" is expanded to the
// user's home directory.
func NewStore(path string) (*Store, error) {
	p, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: p}, nil
}

// Path returns the absolute token file path.
func (s *Store) Path() string {
	return s.path
}

// Token returns the auth token using precedence: env var > file > empty.
// A missing or unreadable file yields an empty token.
func (s *Store) Token() (string, Source) {
	if tok := strings.TrimSpace(os.Getenv(EnvToken)); tok != "" {
		return tok, SourceEnv
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", SourceNone
	}
	if tok := strings.TrimSpace(string(data)); tok != "" {
		return tok, SourceFile
	}
	return "", SourceNone
}

// Save writes token to the file, owner-readable only.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("credentials.Save: empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("credentials.Save: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("credentials.Save: %w", err)
	}
	return nil
}

// Remove deletes the token file. It reports whether a file was there.
func (s *Store) Remove() (bool, error) {
	err := os.Remove(s.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("credentials.Remove: %w", err)
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
