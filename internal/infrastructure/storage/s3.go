package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint for S3-compatible stores.
	Endpoint    string
	GatewayHost string
}

// putObjectAPI is the subset of *s3.Client the uploader needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores blobs under ipfs/<sha256> so the object key is the
// content address.
type S3Uploader struct {
	client      putObjectAPI
	bucket      string
	gatewayHost string
}

// NewS3Client builds an S3 client. Static credentials are used when both
// keys are set; otherwise the default AWS chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3Uploader(client putObjectAPI, bucket, gatewayHost string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, gatewayHost: gatewayHost}
}

func (u *S3Uploader) Upload(ctx context.Context, data []byte, name string) (res *ports.UploadResult, err error) {
	defer func() { observe(backendS3, err) }()

	hash := Digest(data)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String("ipfs/" + hash),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
		Metadata:    map[string]string{"filename": name},
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload %s: %w", name, err)
	}

	return &ports.UploadResult{ContentHash: hash, GatewayURL: GatewayURL(u.gatewayHost, hash)}, nil
}
