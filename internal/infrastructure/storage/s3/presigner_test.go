package s3

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ahbm/hospital-backend/internal/infrastructure/config"
)

func TestPresigner_PresignUpload(t *testing.T) {
	p, err := NewPresigner(context.Background(), config.S3Config{
		Bucket:        "hm-imagens",
		Region:        "us-east-1",
		Endpoint:      "http://localhost:9000",
		AccessKey:     "minio",
		SecretKey:     "minio-secret",
		PublicBaseURL: "https://cdn.ahbm.com.br",
	})
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	upload, err := p.PresignUpload(context.Background(), "articles/2025/foto.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !strings.HasPrefix(upload.UploadURL, "http://localhost:9000/hm-imagens/articles/2025/foto.jpg?") {
		t.Errorf("URL de upload inesperada: %s", upload.UploadURL)
	}
	if !strings.Contains(upload.UploadURL, "X-Amz-Signature=") {
		t.Errorf("URL sem assinatura: %s", upload.UploadURL)
	}
	if upload.PublicURL != "https://cdn.ahbm.com.br/articles/2025/foto.jpg" {
		t.Errorf("URL pública inesperada: %s", upload.PublicURL)
	}
	if !upload.ExpiresAt.Equal(fixed.Add(UploadExpiry)) {
		t.Errorf("expiração inesperada: %v", upload.ExpiresAt)
	}
}
