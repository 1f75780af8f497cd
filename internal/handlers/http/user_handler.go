package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/handlers/dto"
	"github.com/ahbm/hospital-backend/internal/services"
)

var userListOptions = listquery.Options{
	FilterFields: []string{"username", "email", "name", "role"},
	SortFields:   []string{"createdAt", "username", "active"},
}

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	rootService *services.RootService
	authService *services.AuthService
	cookie      CookieConfig
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(
	userService *services.UserService,
	rootService *services.RootService,
	authService *services.AuthService,
	cookie CookieConfig,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		rootService: rootService,
		authService: authService,
		cookie:      cookie,
	}
}

// GetMe retorna o usuário da sessão
// @Summary Meu perfil
// @Tags users
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetMe(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"user": dto.ToUserResponse(user)}))
}

// UpdateMe altera o próprio perfil; e-mail null é recusado
// @Summary Atualiza meu perfil
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "Campos alterados"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), currentUser(c).ID, req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"user": dto.ToUserResponse(user)}))
}

// DeleteMe desativa a própria conta (root precisa transferir o papel antes)
// @Summary Desativa minha conta
// @Tags users
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.userService.DeactivateOwnAccount(c.Request.Context(), currentUser(c).ID); err != nil {
		_ = c.Error(err)
		return
	}
	clearSessionCookie(c, h.cookie)
	c.Status(http.StatusNoContent)
}

// UpdateMyPassword troca a própria senha e emite uma nova sessão
// @Summary Troca minha senha
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.UpdateMyPasswordRequest true "Senha atual e nova"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/users/me/password [patch]
func (h *UserHandler) UpdateMyPassword(c *gin.Context) {
	var req dto.UpdateMyPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateMyPassword(c.Request.Context(), currentUser(c).ID, req.CurrentPassword, req.Password)
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
	c.JSON(http.StatusOK, dto.Success(dto.NewSessionResponse(session)).WithMessage(c, "message.password_updated"))
}

// ListUsers lista usuários com filtros, ordenação e paginação
// @Summary Lista usuários
// @Tags users
// @Produce json
// @Param page query int false "Página"
// @Param limit query int false "Itens por página (máx. 100)"
// @Param sort query string false "campo;asc|desc"
// @Param filter query string false "campo:op[valor],..."
// @Success 200 {object} dto.Response
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := h.userService.ListUsers(c.Request.Context(), listParams(c, userListOptions))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated("users", dto.ToUserResponses(page.Items), len(page.Items),
		dto.NewPagination(page.Params, page.Total)))
}

// CreateUser cria um novo usuário respeitando a hierarquia de papéis
// @Summary Cria usuário
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "Dados do usuário"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), currentUser(c), req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(gin.H{"user": dto.ToUserResponse(user)}))
}

// GetUser busca um usuário pelo username
// @Summary Busca usuário
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{username} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"user": dto.ToUserResponse(user)}))
}

// UpdateUser altera outro usuário (papel só pelo root, nunca para root)
// @Summary Atualiza usuário
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param body body dto.UpdateUserRequest true "Campos alterados"
// @Success 200 {object} dto.Response
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users/{username} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), currentUser(c), c.Param("username"), req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"user": dto.ToUserResponse(user)}))
}

// ToggleUserActive ativa/desativa um usuário
// @Summary Alterna status do usuário
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.Response
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users/{username}/active [patch]
func (h *UserHandler) ToggleUserActive(c *gin.Context) {
	user, err := h.userService.ToggleUserActive(c.Request.Context(), currentUser(c), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	key := "message.user_deactivated"
	if user.Active {
		key = "message.user_activated"
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"user": dto.ToUserResponse(user)}).WithMessage(c, key))
}

// EligibleForRoot lista os admins ativos que podem receber o papel root
// @Summary Candidatos à transferência de root
// @Tags users
// @Produce json
// @Success 200 {object} dto.Response
// @Router /admin/users/eligible-for-root [get]
func (h *UserHandler) EligibleForRoot(c *gin.Context) {
	users, err := h.rootService.EligibleForTransfer(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.List("users", dto.ToUserResponses(users), len(users)))
}

// TransferRoot transfere o papel root para um admin ativo
// @Summary Transfere o papel root
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.TransferRootRequest true "Alvo e senha do root"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/users/transfer-root [post]
func (h *UserHandler) TransferRoot(c *gin.Context) {
	var req dto.TransferRootRequest
	if !bindJSON(c, &req) {
		return
	}

	transfer, err := h.rootService.TransferRoot(c.Request.Context(), currentUser(c).ID, req.TargetUsername, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(dto.TransferResponse{
		FormerRoot: dto.ToUserResponse(transfer.FormerRoot),
		NewRoot:    dto.ToUserResponse(transfer.NewRoot),
	}).WithMessage(c, "message.root_transferred", map[string]interface{}{"Username": transfer.NewRoot.Username}))
}

// DeleteUser exclui um usuário após confirmar a senha do root
// @Summary Exclui usuário
// @Tags users
// @Accept json
// @Param username path string true "Username"
// @Param body body dto.ConfirmPasswordRequest true "Senha do root"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users/{username} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var req dto.ConfirmPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.rootService.DeleteUser(c.Request.Context(), currentUser(c).ID, c.Param("username"), req.Password); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetUserPassword define a senha de outro usuário (somente root)
// @Summary Define senha de usuário
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param body body dto.NewPasswordRequest true "Nova senha"
// @Success 200 {object} dto.Response
// @Router /admin/users/{username}/password [patch]
func (h *UserHandler) SetUserPassword(c *gin.Context) {
	var req dto.NewPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.rootService.UpdatePassword(c.Request.Context(), c.Param("username"), req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"user": dto.ToUserResponse(user)}).WithMessage(c, "message.password_updated"))
}
