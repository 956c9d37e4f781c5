package backup_storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/khoahotran/portfolio/internal/application/service"
)

type fileSink struct {
	dir string
}

func NewFileSink(dir string) (service.BackupSink, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &fileSink{dir: dir}, nil
}

func (s *fileSink) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid backup key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// Upload writes to a temp file first so a failed write never leaves a
// truncated backup under the final name.
func (s *fileSink) Upload(_ context.Context, file io.Reader, key string) (string, error) {
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-"+key+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("rename backup: %w", err)
	}
	return dst, nil
}

func (s *fileSink) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}
