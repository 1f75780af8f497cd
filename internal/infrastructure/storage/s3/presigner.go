package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/infrastructure/config"
)

// UploadExpiry é a validade da URL de upload
const UploadExpiry = 15 * time.Minute

// Presigner gera URLs de PUT assinadas para o bucket de imagens
type Presigner struct {
	client        *awss3.PresignClient
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

// NewPresigner cria o cliente S3 (compatível com MinIO via S3_ENDPOINT)
func NewPresigner(ctx context.Context, cfg config.S3Config) (*Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &Presigner{
		client:        awss3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: publicBase,
		now:           time.Now,
	}, nil
}

func (p *Presigner) PresignUpload(ctx context.Context, key, contentType string) (*ports.PresignedUpload, error) {
	req, err := p.client.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, awss3.WithPresignExpires(UploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &ports.PresignedUpload{
		UploadURL: req.URL,
		PublicURL: p.publicBaseURL + "/" + key,
		Key:       key,
		ExpiresAt: p.now().Add(UploadExpiry),
	}, nil
}
