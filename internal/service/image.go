package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrisnap/nutrisnap/backend/config"
)

// photoURLTTL bounds how long an uploaded photo's URL stays fetchable.
// Analysis happens right after upload, so a day is plenty.
const photoURLTTL = 24 * time.Hour

// ImageService stores uploaded meal photos in S3 and hands back the
// URL the analyze endpoint consumes.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadMealPhoto uploads photo bytes under a fresh key and returns a
// presigned URL for it. The bucket stays private; the analyze pipeline
// fetches through the signed URL like any other client.
func (s *ImageService) UploadMealPhoto(ctx context.Context, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("meal-photos/%s", uuid.New().String())
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url, err := s.s3Config.GeneratePresignedURL(ctx, key, photoURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign photo URL: %w", err)
	}

	log.Printf("[ImageService] uploaded meal photo: %s", key)
	return url, nil
}
