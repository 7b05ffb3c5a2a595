package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePresignedURL(t *testing.T) {
	// Presigning is pure request signing, no network involved.
	awsCfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
	}
	s3cfg := &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: "meal-photos-test",
	}

	url, err := s3cfg.GeneratePresignedURL(context.Background(), "meal-photos/abc123", time.Hour)
	require.NoError(t, err)

	assert.Contains(t, url, "meal-photos-test")
	assert.Contains(t, url, "meal-photos/abc123")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=3600")
}
