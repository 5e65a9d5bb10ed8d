package backup

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"

	"dairy-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Service dumps the database with pg_dump and uploads it to an
// S3-compatible bucket (R2 in production).
type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) s3Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.Backup.AccessKey,
			s.cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.Backup.Endpoint)
	}), nil
}

// Run takes one backup: pg_dump in custom format, streamed into the bucket
// under base/<db>_<timestamp>.dump.
func (s *Service) Run(ctx context.Context) error {
	db := s.cfg.Database

	cmd := exec.CommandContext(ctx, "pg_dump",
		"-h", db.Host,
		"-p", fmt.Sprintf("%d", db.Port),
		"-U", db.User,
		"-d", db.Name,
		"-Fc",
	)
	cmd.Env = append(cmd.Environ(), "PGPASSWORD="+db.Password)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pg_dump failed: %w: %s", err, stderr.String())
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("base/%s_%s.dump", db.Name, time.Now().UTC().Format("20060102_150405"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Backup.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(out.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("failed to upload backup: %w", err)
	}

	log.Printf("[Backup] Uploaded %s (%d bytes)", key, out.Len())
	return nil
}

// RunPeriodic blocks, backing up at the configured interval. Meant to run
// in its own goroutine; returns when ctx is cancelled.
func (s *Service) RunPeriodic(ctx context.Context) {
	interval := time.Duration(s.cfg.Backup.IntervalH) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				log.Printf("[Backup] %v", err)
			}
		}
	}
}
