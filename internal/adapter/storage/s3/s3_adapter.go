package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.uber.org/zap"
)

// S3Storage stores listing images in a MinIO/S3 bucket.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
	}

	log.Info("S3 storage initialized", zap.String("endpoint", endpoint), zap.String("bucket", bucketName))
	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log.Named("S3Storage"),
	}, nil
}

// Upload stores the image bytes under a generated key, keeping the original
// extension, and returns the public URL.
func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("Upload: PutObject failed",
			zap.String("bucket", s.bucket), zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Debug("Image uploaded", zap.String("url", fileURL), zap.Int("size_bytes", len(data)))
	return fileURL, nil
}
