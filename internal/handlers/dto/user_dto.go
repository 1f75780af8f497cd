package dto

import (
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	"github.com/ahbm/hospital-backend/internal/services"
)

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Username        string        `json:"username" binding:"required,username,max=30"`
	Password        string        `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirm string        `json:"passwordConfirm" binding:"required,eqfield=Password"`
	Name            string        `json:"name" binding:"required,min=2,max=100"`
	Email           string        `json:"email" binding:"required,email"`
	Phone           *string       `json:"phone" binding:"omitempty,br_phone"`
	Image           *string       `json:"image" binding:"omitempty,url"`
	Role            entities.Role `json:"role" binding:"omitempty,oneof=root admin journalist"`
}

// ToInput converte para o input do serviço
func (r CreateUserRequest) ToInput() services.CreateUserInput {
	return services.CreateUserInput{
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Image:    r.Image,
		Role:     r.Role,
	}
}

// UpdateProfileRequest é o PATCH de perfil; null remove campos opcionais
type UpdateProfileRequest struct {
	Name  valueobjects.Field[string] `json:"name" binding:"omitempty,min=2,max=100"`
	Email valueobjects.Field[string] `json:"email" binding:"omitempty,email"`
	Phone valueobjects.Field[string] `json:"phone" binding:"omitempty,br_phone"`
	Image valueobjects.Field[string] `json:"image" binding:"omitempty,url"`
}

// ToInput converte para o input do serviço
func (r UpdateProfileRequest) ToInput() services.ProfileInput {
	return services.ProfileInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Image: r.Image,
	}
}

// UpdateUserRequest é o PATCH feito por admin/root em outro usuário
type UpdateUserRequest struct {
	UpdateProfileRequest
	Role   valueobjects.Field[entities.Role] `json:"role" binding:"omitempty,oneof=root admin journalist"`
	Active valueobjects.Field[bool]          `json:"active"`
}

// ToInput converte para o input do serviço
func (r UpdateUserRequest) ToInput() services.UpdateUserInput {
	return services.UpdateUserInput{
		ProfileInput: r.UpdateProfileRequest.ToInput(),
		Role:         r.Role,
		Active:       r.Active,
	}
}

// UserResponse representa a resposta de um usuário; hash e token de senha nunca saem daqui
type UserResponse struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone,omitempty"`
	Image             *string    `json:"image,omitempty"`
	Role              string     `json:"role"`
	Active            bool       `json:"active"`
	PasswordChangedAt *time.Time `json:"passwordChangedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Name:              user.Name,
		Email:             user.Email.String(),
		Phone:             user.Phone,
		Image:             user.Image,
		Role:              string(user.Role),
		Active:            user.Active,
		PasswordChangedAt: user.PasswordChangedAt,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// UserRefResponse é a projeção de autor/editor
type UserRefResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func toUserRef(ref entities.UserRef) UserRefResponse {
	return UserRefResponse{ID: ref.ID, Username: ref.Username, Name: ref.Name}
}

func toOptionalUserRef(ref *entities.UserRef) *UserRefResponse {
	if ref == nil {
		return nil
	}
	out := toUserRef(*ref)
	return &out
}
