package backup_storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type s3Sink struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Sink uses static credentials when configured and the default AWS
// chain otherwise.
func NewS3Sink(ctx context.Context, cfg config.Config, log logger.Logger) (service.BackupSink, error) {
	b := cfg.Backup
	if b.S3Bucket == "" {
		return nil, fmt.Errorf("config BACKUP_S3_BUCKET is empty")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(b.S3Region)}
	if b.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(b.AccessKeyID, b.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if b.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(b.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info("Initialize S3 backup sink successfully.")
	return &s3Sink{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   b.S3Bucket,
		prefix:   b.S3Prefix,
	}, nil
}

func (s *s3Sink) objectKey(key string) string {
	return path.Join(s.prefix, key)
}

func (s *s3Sink) Upload(ctx context.Context, file io.Reader, key string) (string, error) {
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        file,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return out.Location, nil
}

func (s *s3Sink) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return out.Body, nil
}
