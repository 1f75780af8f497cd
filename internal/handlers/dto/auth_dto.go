package dto

import (
	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/services"
)

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateRootRequest representa a criação do primeiro usuário root
type CreateRootRequest struct {
	Username        string  `json:"username" binding:"required,username,max=30"`
	Password        string  `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string  `json:"passwordConfirm" binding:"required,eqfield=Password"`
	Name            string  `json:"name" binding:"required,min=2,max=100"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           *string `json:"phone" binding:"omitempty,br_phone"`
	Image           *string `json:"image" binding:"omitempty,url"`
}

// ToInput converte para o input do serviço
func (r CreateRootRequest) ToInput() services.CreateUserInput {
	return services.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Image:    r.Image,
		Role:     entities.RoleRoot,
	}
}

// ForgotPasswordRequest pede o envio do token de redefinição
type ForgotPasswordRequest struct {
	Username string `json:"username" binding:"required"`
}

// NewPasswordRequest é usado em reset, troca pelo root e troca da própria senha
type NewPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

// UpdateMyPasswordRequest exige a senha atual
type UpdateMyPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPasswordRequest
}

// TransferRootRequest transfere o papel root para um admin ativo
type TransferRootRequest struct {
	TargetUsername string `json:"targetUsername" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

// ConfirmPasswordRequest confirma uma ação sensível com a senha do root
type ConfirmPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// RootStatusResponse informa se já existe root
type RootStatusResponse struct {
	RootExists bool `json:"rootExists"`
	RootActive bool `json:"rootActive"`
}

// SessionResponse é devolvido em login e create-root
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewSessionResponse monta a resposta a partir da sessão emitida
func NewSessionResponse(session *services.Session) SessionResponse {
	return SessionResponse{
		User:  ToUserResponse(session.User),
		Token: session.Token,
	}
}

// TransferResponse mostra os dois lados da transferência
type TransferResponse struct {
	FormerRoot UserResponse `json:"formerRoot"`
	NewRoot    UserResponse `json:"newRoot"`
}
