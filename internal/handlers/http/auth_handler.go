package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/handlers/dto"
	"github.com/ahbm/hospital-backend/internal/services"
)

// AuthHandler lida com bootstrap do root, login e redefinição de senha
type AuthHandler struct {
	authService *services.AuthService
	rootService *services.RootService
	cookie      CookieConfig
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, rootService *services.RootService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		rootService: rootService,
		cookie:      cookie,
	}
}

// CheckRoot informa se o root já foi criado
// @Summary Verifica a existência do usuário root
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/auth/check-root [get]
func (h *AuthHandler) CheckRoot(c *gin.Context) {
	status, err := h.rootService.Status(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	key := "message.root_active"
	switch {
	case !status.Exists:
		key = "message.root_missing"
	case !status.Active:
		key = "message.root_inactive"
	}

	c.JSON(http.StatusOK, dto.Success(dto.RootStatusResponse{
		RootExists: status.Exists,
		RootActive: status.Active,
	}).WithMessage(c, key))
}

// CreateRoot cria o primeiro usuário root e já abre a sessão
// @Summary Cria o usuário root
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.CreateRootRequest true "Dados do root"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/auth/create-root [post]
func (h *AuthHandler) CreateRoot(c *gin.Context) {
	var req dto.CreateRootRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.rootService.CreateRoot(c.Request.Context(), req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	session, err := h.authService.IssueSession(user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	setSessionCookie(c, h.cookie, session.Token)
	c.JSON(http.StatusCreated, dto.Success(dto.NewSessionResponse(session)).WithMessage(c, "message.root_created"))
}

// Login autentica por username e senha
// @Summary Login no painel
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	setSessionCookie(c, h.cookie, session.Token)

	resp := dto.Success(dto.NewSessionResponse(session))
	if session.RootInactive {
		resp = resp.WithMessage(c, "message.root_inactive")
	}
	c.JSON(http.StatusOK, resp)
}

// Logout invalida o cookie de sessão
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.cookie)
	c.JSON(http.StatusOK, dto.SuccessMessage(c, "message.logged_out"))
}

// ForgotPassword envia o link de redefinição para o e-mail do usuário
// @Summary Esqueci minha senha
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequest true "Username"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Username, dto.GetLanguage(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessMessage(c, "message.reset_token_sent"))
}

// ResetPassword troca a senha usando o token recebido por e-mail
// @Summary Redefine a senha
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Token de redefinição"
// @Param body body dto.NewPasswordRequest true "Nova senha"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/auth/reset-password/{token} [patch]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.NewPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessMessage(c, "message.password_updated"))
}
