package session_storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/khoahotran/portfolio/internal/domain/session"
)

const sessionFile = "session.json"

type fileFlag struct {
	Authenticated bool      `json:"authenticated"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FileFlagStore keeps the authenticated flag of this device in a JSON file.
type FileFlagStore struct {
	path string
	now  func() time.Time
}

var _ session.FlagStore = (*FileFlagStore)(nil)

func NewFileFlagStore(dir string) *FileFlagStore {
	return &FileFlagStore{path: filepath.Join(dir, sessionFile), now: time.Now}
}

// DefaultDir is the per-user config directory for the operator CLI.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(base, "portfolio"), nil
}

// Authenticated reports false when the file does not exist yet.
func (s *FileFlagStore) Authenticated(_ context.Context) (bool, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session flag: %w", err)
	}
	var f fileFlag
	if err := json.Unmarshal(b, &f); err != nil {
		return false, fmt.Errorf("decode session flag: %w", err)
	}
	return f.Authenticated, nil
}

func (s *FileFlagStore) SetAuthenticated(_ context.Context, v bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	b, err := json.Marshal(fileFlag{Authenticated: v, UpdatedAt: s.now().UTC()})
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session flag: %w", err)
	}
	return os.Rename(tmp, s.path)
}
