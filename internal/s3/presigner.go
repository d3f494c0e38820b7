package s3

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

// FilePresigner hands out short-lived PUT URLs for video assets so thumbnail
// uploads never pass through the API process.
type FilePresigner struct {
	presignClient *s3.PresignClient
	bucket        string
	endpoint      string
}

func NewFilePresigner(ctx context.Context, endpoint, region, bucket string) (*FilePresigner, error) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &FilePresigner{
		presignClient: s3.NewPresignClient(client),
		bucket:        bucket,
		endpoint:      endpoint,
	}, nil
}

func (p *FilePresigner) PresignedUploadURL(ctx context.Context, objectKey string) (string, error) {
	request, err := p.presignClient.PresignPutObject(ctx,
		&s3.PutObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(objectKey),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = presignExpiry
		},
	)
	if err != nil {
		return "", err
	}

	return request.URL, nil
}

// PublicURL is where the object will be reachable once uploaded.
func (p *FilePresigner) PublicURL(objectKey string) string {
	return p.endpoint + "/" + p.bucket + "/" + objectKey
}
