package persistent

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"vcardqr/pkg/s3client"
)

// ArchiveRepo stores rendered card PNGs in S3-compatible object storage.
type ArchiveRepo struct {
	*s3client.S3Client
	bucket string
}

func NewArchiveRepo(s3c *s3client.S3Client, bucket string) *ArchiveRepo {
	return &ArchiveRepo{s3c, bucket}
}

func (r *ArchiveRepo) UploadBytes(ctx context.Context, key string, data []byte, contentType string, size int64) error {
	b := bytes.NewReader(data)

	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          b,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("ArchiveRepo - UploadBytes - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *ArchiveRepo) Delete(ctx context.Context, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ArchiveRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}
