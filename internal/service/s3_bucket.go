package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PhotoStorage uploads room photos to an S3 bucket and hands back their
// public URLs.
type PhotoStorage struct {
	bucketName string
	client     *s3.Client
}

// NewPhotoStorage initializes the S3-backed photo storage.
func NewPhotoStorage(ctx context.Context, region, bucketName string) (*PhotoStorage, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("s3 bucket name is not configured")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws configuration: %w", err)
	}

	return &PhotoStorage{
		bucketName: bucketName,
		client:     s3.NewFromConfig(cfg),
	}, nil
}

// Upload stores one photo in the bucket under a unique key and returns
// its public URL.
func (p *PhotoStorage) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if _, err := buffer.ReadFrom(file); err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}

	// Unique key keeps re-uploads of the same filename from clobbering
	// each other.
	key := fmt.Sprintf("rooms/%d_%s%s", time.Now().Unix(), uuid.NewString(), path.Ext(header.Filename))

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to s3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", p.bucketName, key), nil
}
