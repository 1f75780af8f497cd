package ports

import (
	"context"
	"time"
)

// PresignedUpload é uma URL temporária para envio direto ao storage
type PresignedUpload struct {
	UploadURL string
	PublicURL string
	Key       string
	ExpiresAt time.Time
}

// UploadPresigner gera URLs de upload para imagens de notícias e perfis
type UploadPresigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error)
}
