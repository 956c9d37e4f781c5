package backup_storage

import (
	"context"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// NewSinkFromConfig prefers S3 when a bucket is configured and falls back to
// a local directory. It returns nil when neither is set.
func NewSinkFromConfig(ctx context.Context, cfg config.Config, log logger.Logger) (service.BackupSink, error) {
	switch {
	case cfg.Backup.S3Bucket != "":
		return NewS3Sink(ctx, cfg, log)
	case cfg.Backup.Dir != "":
		return NewFileSink(cfg.Backup.Dir)
	default:
		return nil, nil
	}
}
