package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 5 << 20

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp"}

	ErrStorageDisabled  = errors.New("object storage is not configured")
	ErrFileTooLarge     = errors.New("file exceeds the 5MB limit")
	ErrFileTypeNotAllow = errors.New("file type not allowed")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	S3Config struct {
		Bucket    string
		Region    string
		Endpoint  string
		AccessKey string
		SecretKey string
	}

	awsS3 struct {
		client  *s3.Client
		bucket  string
		baseURL string
		timeout time.Duration
	}

	disabledS3 struct{}
)

// NewAwsS3 returns a bucket-backed store, or a store that rejects every
// write when no bucket is configured.
func NewAwsS3(ctx context.Context, cfg S3Config) (AwsS3, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		log.Warn().Msg("AWS_S3_BUCKET not set, recipe image uploads are disabled")
		return disabledS3{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		baseURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &awsS3{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		timeout: 30 * time.Second,
	}, nil
}

func (s *awsS3) UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	body, contentType, ext, err := openChecked(file, allowed)
	if err != nil {
		return "", err
	}
	defer body.Close()

	objectKey := path.Join(folder, fmt.Sprintf("%s-%s%s", name, uuid.NewString()[:8], ext))
	if err := s.put(ctx, objectKey, body, contentType); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", objectKey, err)
	}
	return nil
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return s.baseURL + "/" + strings.TrimLeft(objectKey, "/")
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (s *awsS3) put(ctx context.Context, objectKey string, body io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("s3 upload failure")
		return fmt.Errorf("upload object %s: %w", objectKey, err)
	}
	log.Info().Str("key", objectKey).Msg("uploaded object to s3 bucket")
	return nil
}

// openChecked opens the upload and sniffs its real content type.
func openChecked(file *multipart.FileHeader, allowed []string) (io.ReadSeekCloser, string, string, error) {
	if file.Size > maxUploadSize {
		return nil, "", "", ErrFileTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", "", err
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, "", "", err
	}
	if len(allowed) > 0 && !slices.Contains(allowed, mt.String()) {
		f.Close()
		return nil, "", "", fmt.Errorf("%w: %s", ErrFileTypeNotAllow, mt.String())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, "", "", err
	}
	return f, mt.String(), mt.Extension(), nil
}

func (disabledS3) UploadFile(context.Context, string, *multipart.FileHeader, string, ...string) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledS3) DeleteFile(context.Context, string) error { return nil }

func (disabledS3) GetPublicLinkKey(objectKey string) string { return objectKey }

func (disabledS3) GetObjectKeyFromLink(string) string { return "" }
