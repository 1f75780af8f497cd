package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/handlers/dto"
	"github.com/ahbm/hospital-backend/internal/services"
)

var (
	doctorListOptions = listquery.Options{
		FilterFields: []string{"name", "specialty", "crm"},
		SortFields:   []string{"createdAt", "name", "visible"},
	}
	publicDoctorListOptions = listquery.Options{
		FilterFields: []string{"name", "specialty", "crm", "state"},
		SortFields:   []string{"name", "specialty"},
	}
)

// DoctorHandler lida com o corpo clínico
type DoctorHandler struct {
	doctorService *services.DoctorService
}

// NewDoctorHandler cria um novo DoctorHandler
func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// ListDoctors lista médicos visíveis e ocultos
// @Summary Lista médicos
// @Tags doctors
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/doctors [get]
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	page, err := h.doctorService.ListDoctors(c.Request.Context(), listParams(c, doctorListOptions))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated("doctors", dto.ToDoctorResponses(page.Items), len(page.Items),
		dto.NewPagination(page.Params, page.Total)))
}

// GetDoctor busca um médico pelo id
// @Summary Busca médico
// @Tags doctors
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	doctor, err := h.doctorService.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"doctor": dto.ToDoctorResponse(doctor)}))
}

// CreateDoctor cadastra um médico com as escalas
// @Summary Cadastra médico
// @Tags doctors
// @Accept json
// @Produce json
// @Param body body dto.CreateDoctorRequest true "Médico"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/doctors [post]
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req dto.CreateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	doctor, err := h.doctorService.CreateDoctor(c.Request.Context(), currentUser(c), req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(gin.H{"doctor": dto.ToDoctorResponse(doctor)}))
}

// UpdateDoctor altera campos e substitui as escalas quando enviadas
// @Summary Atualiza médico
// @Tags doctors
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param body body dto.UpdateDoctorRequest true "Campos alterados"
// @Success 200 {object} dto.Response
// @Router /admin/doctors/{id} [patch]
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var req dto.UpdateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	doctor, err := h.doctorService.UpdateDoctor(c.Request.Context(), currentUser(c), c.Param("id"), req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"doctor": dto.ToDoctorResponse(doctor)}))
}

// DeleteDoctor exclui o médico e suas escalas
// @Summary Exclui médico
// @Tags doctors
// @Param id path string true "ID"
// @Success 204
// @Router /admin/doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	if err := h.doctorService.DeleteDoctor(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleVisibility mostra/oculta o médico no site
// @Summary Alterna visibilidade
// @Tags doctors
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} dto.Response
// @Router /admin/doctors/{id}/visibility [patch]
func (h *DoctorHandler) ToggleVisibility(c *gin.Context) {
	doctor, err := h.doctorService.ToggleVisibility(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	key := "message.doctor_hidden"
	if doctor.Visible {
		key = "message.doctor_visible"
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"doctor": dto.ToDoctorResponse(doctor)}).WithMessage(c, key))
}

// ListVisible lista o corpo clínico exibido no site
// @Summary Médicos visíveis
// @Tags public
// @Produce json
// @Success 200 {object} dto.Response
// @Router /public/doctors [get]
func (h *DoctorHandler) ListVisible(c *gin.Context) {
	page, err := h.doctorService.ListVisibleDoctors(c.Request.Context(), listParams(c, publicDoctorListOptions))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated("doctors", dto.ToPublicDoctorResponses(page.Items), len(page.Items),
		dto.NewPagination(page.Params, page.Total)))
}
