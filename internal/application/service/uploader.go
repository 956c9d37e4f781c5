package service

import (
	"context"
	"io"
)

// BackupSink stores and retrieves snapshot blobs by key.
type BackupSink interface {
	Upload(ctx context.Context, file io.Reader, key string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
