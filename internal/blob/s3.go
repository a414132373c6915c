package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
)

// S3Config holds the settings for an S3-compatible blob store.
// Endpoint may point at a MinIO instance.
type S3Config struct {
	Region   string
	Bucket   string
	Endpoint string
	User     string
	Password string
}

// S3Store stores blobs in an S3-compatible bucket under "{owner}/{key}".
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds an S3 client with static credentials and returns a
// store over the configured bucket.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.User,
			cfg.Password,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3Store) objectKey(ownerID, key string) (string, error) {
	if err := validName(ownerID); err != nil {
		return "", err
	}
	if err := validName(key); err != nil {
		return "", err
	}
	return ownerID + "/" + key, nil
}

// Put uploads the blob to the bucket.
func (s *S3Store) Put(ctx context.Context, ownerID, key, contentType string, data []byte) error {
	k, err := s.objectKey(ownerID, key)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(k),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// Open fetches the blob from the bucket.
func (s *S3Store) Open(ctx context.Context, ownerID, key string) (io.ReadCloser, error) {
	k, err := s.objectKey(ownerID, key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	})
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return out.Body, nil
}

// Delete removes the blob from the bucket. S3 deletes are idempotent, so
// an absent key is not an error.
func (s *S3Store) Delete(ctx context.Context, ownerID, key string) error {
	k, err := s.objectKey(ownerID, key)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
