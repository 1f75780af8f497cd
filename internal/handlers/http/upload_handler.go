package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/handlers/dto"
)

// imageExtensions são os tipos de imagem aceitos no upload
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadHandler emite URLs de envio direto ao bucket
type UploadHandler struct {
	presigner ports.UploadPresigner
}

// NewUploadHandler cria um novo UploadHandler
func NewUploadHandler(presigner ports.UploadPresigner) *UploadHandler {
	return &UploadHandler{presigner: presigner}
}

// PresignUpload devolve uma URL PUT temporária para a imagem
// @Summary URL de upload de imagem
// @Tags uploads
// @Accept json
// @Produce json
// @Param body body dto.PresignUploadRequest true "Pasta e tipo do arquivo"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/uploads [post]
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	var req dto.PresignUploadRequest
	if !bindJSON(c, &req) {
		return
	}

	ext, ok := imageExtensions[req.ContentType]
	if !ok {
		_ = c.Error(errors.ErrUploadType)
		return
	}

	key := req.Folder + "/" + uuid.NewString() + ext
	upload, err := h.presigner.PresignUpload(c.Request.Context(), key, req.ContentType)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(gin.H{"upload": dto.ToPresignUploadResponse(upload)}))
}
