package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the part of the S3 client the slot needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Options struct {
	SlotName string
	Bucket   string
	Prefix   string
	// Endpoint points the client at an S3-compatible service (R2, MinIO).
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type S3Slot struct {
	client S3API
	bucket string
	key    string
}

func NewS3Slot(ctx context.Context, opts S3Options) (*S3Slot, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = "auto"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	sdkCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	endpoint := strings.TrimSpace(opts.Endpoint)
	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SlotWithClient(client, opts), nil
}

func NewS3SlotWithClient(client S3API, opts S3Options) *S3Slot {
	return &S3Slot{
		client: client,
		bucket: opts.Bucket,
		key:    s3Key(opts.Prefix, slotName(opts.SlotName)),
	}
}

func (s *S3Slot) Key() string {
	return s.key
}

func (s *S3Slot) Read(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("get object %s: %w", s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", s.key, err)
	}
	return data, nil
}

func (s *S3Slot) Write(ctx context.Context, payload []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", s.key, err)
	}
	return nil
}

func (s *S3Slot) Close() error {
	return nil
}

func isMissingObject(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// s3Key turns the slot name into an object key; "@" and "/" are not kept in
// the file part.
func s3Key(prefix, name string) string {
	name = strings.TrimLeft(name, "@")
	name = strings.ReplaceAll(name, "/", "_")
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return name + ".json"
	}
	return prefix + "/" + name + ".json"
}
