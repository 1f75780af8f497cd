package dto

import (
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
)

// PresignUploadRequest pede uma URL de envio direto ao storage
type PresignUploadRequest struct {
	Folder      string `json:"folder" binding:"required,oneof=articles users"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignUploadResponse devolve para onde enviar e onde a imagem ficará pública
type PresignUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToPresignUploadResponse converte o resultado do presigner
func ToPresignUploadResponse(upload *ports.PresignedUpload) PresignUploadResponse {
	return PresignUploadResponse{
		UploadURL: upload.UploadURL,
		PublicURL: upload.PublicURL,
		Key:       upload.Key,
		ExpiresAt: upload.ExpiresAt,
	}
}
