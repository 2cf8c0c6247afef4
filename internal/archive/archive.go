// Package archive snapshots published records to S3-compatible object storage
// (Cloudflare R2). Uploads are fire-and-forget; a failed snapshot is logged
// and never blocks publication.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/emlakpress/contentd/internal/logger"
	"github.com/emlakpress/contentd/internal/models"
)

// Archiver stores immutable version snapshots of content records.
type Archiver interface {
	Snapshot(ctx context.Context, rec *models.ContentRecord)
}

// R2Archiver uploads snapshots to an R2 bucket under
// content_versions/<table>/<id>/<unix-ms>.json.
type R2Archiver struct {
	client *s3.Client
	bucket string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

func NewR2Archiver(ctx context.Context, cfg Config) (*R2Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Archiver{client: client, bucket: cfg.Bucket}, nil
}

func (a *R2Archiver) Snapshot(ctx context.Context, rec *models.ContentRecord) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Get().Warn().Err(err).Str("id", rec.ID).Msg("failed to encode version snapshot")
		return
	}

	key := fmt.Sprintf("content_versions/%s/%s/%d.json",
		rec.ContentType.Table(), rec.ID, time.Now().UnixMilli())

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("failed to upload version snapshot")
		return
	}

	logger.Get().Debug().Str("key", key).Msg("version snapshot archived")
}

// NopArchiver drops snapshots. Used when R2 is not configured and in tests.
type NopArchiver struct{}

func (NopArchiver) Snapshot(ctx context.Context, rec *models.ContentRecord) {}
