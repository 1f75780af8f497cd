package services

import (
	"context"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	hasher   ports.PasswordHasher
	events   ports.EventPublisher
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	hasher ports.PasswordHasher,
	events ports.EventPublisher,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		events:   events,
		logger:   logger,
	}
}

// CreateUser cria um usuário com o papel permitido ao criador.
// root cria admin ou journalist; admin cria apenas journalist.
func (s *UserService) CreateUser(ctx context.Context, requester *entities.User, input CreateUserInput) (*entities.User, error) {
	role, ok := requester.Role.CanCreate(input.Role)
	if !ok {
		return nil, errors.ErrCannotCreateRole.With(map[string]interface{}{"Role": string(input.Role)})
	}

	user, err := input.toUser()
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := validateUser(user); err != nil {
		return nil, err
	}

	if err := ensureUnique(ctx, s.userRepo, user.Username, user.Email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role, "by", requester.ID)
	publish(ctx, s.events, ports.Event{
		Type:    ports.EventUserCreated,
		ActorID: requester.ID,
		Subject: user.Username,
		Payload: map[string]any{"role": user.Role},
	})

	return user, nil
}

// GetUser busca um usuário pelo username
func (s *UserService) GetUser(ctx context.Context, username string) (*entities.User, error) {
	return requireUsername(ctx, s.userRepo, username)
}

// ListUsers lista usuários com filtros e paginação
func (s *UserService) ListUsers(ctx context.Context, params listquery.Params) (*Page[*entities.User], error) {
	users, total, err := s.userRepo.List(ctx, params.WithDefaultSort("createdAt", listquery.Desc))
	if err != nil {
		return nil, err
	}
	return newPage(users, total, params), nil
}

// UpdateUserInput são os campos que admin/root podem alterar em outro usuário
type UpdateUserInput struct {
	ProfileInput
	Role   valueobjects.Field[entities.Role]
	Active valueobjects.Field[bool]
}

// UpdateUser altera outro usuário respeitando a hierarquia.
// O papel só é aceito quando quem pede é root, e nunca pode virar root.
func (s *UserService) UpdateUser(ctx context.Context, requester *entities.User, username string, input UpdateUserInput) (*entities.User, error) {
	if input.Email.IsNull() {
		return nil, errors.ErrEmailRequired
	}

	target, err := requireUsername(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}

	if target.ID != requester.ID && !requester.Role.CanManage(target.Role) {
		return nil, errors.ErrHierarchy
	}

	if err := applyProfile(ctx, s.userRepo, target, input.ProfileInput); err != nil {
		return nil, err
	}

	if role, ok := input.Role.Get(); ok && requester.IsRoot() && role != target.Role {
		if role == entities.RoleRoot {
			return nil, errors.ErrCannotAssignRoot
		}
		if target.IsRoot() {
			return nil, errors.ErrCannotChangeRootRole
		}
		target.Role = role
	}

	if active, ok := input.Active.Get(); ok && active != target.Active {
		if target.IsRoot() {
			return nil, errors.ErrCannotDeactivateRoot
		}
		target.Active = active
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", target.ID, "by", requester.ID)
	return target, nil
}

// ToggleUserActive ativa/desativa outro usuário
func (s *UserService) ToggleUserActive(ctx context.Context, requester *entities.User, username string) (*entities.User, error) {
	target, err := requireUsername(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}

	if target.IsRoot() {
		return nil, errors.ErrCannotDeactivateRoot
	}
	if target.ID == requester.ID {
		return nil, errors.ErrCannotToggleSelf
	}
	if !requester.Role.CanManage(target.Role) {
		return nil, errors.ErrHierarchy
	}

	target.Active = !target.Active
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Info("user active toggled", "user_id", target.ID, "active", target.Active, "by", requester.ID)
	publish(ctx, s.events, ports.Event{
		Type:    ports.EventUserActiveToggled,
		ActorID: requester.ID,
		Subject: target.Username,
		Payload: map[string]any{"active": target.Active},
	})

	return target, nil
}

// GetMe retorna o usuário da sessão
func (s *UserService) GetMe(ctx context.Context, userID string) (*entities.User, error) {
	return requireUser(ctx, s.userRepo, userID)
}

// UpdateMe altera o perfil do próprio usuário
func (s *UserService) UpdateMe(ctx context.Context, userID string, input ProfileInput) (*entities.User, error) {
	if input.Email.IsNull() {
		return nil, errors.ErrEmailRequired
	}

	user, err := requireUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if err := applyProfile(ctx, s.userRepo, user, input); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeactivateOwnAccount desativa a conta do próprio usuário.
// O root precisa transferir o papel antes.
func (s *UserService) DeactivateOwnAccount(ctx context.Context, userID string) error {
	user, err := requireUser(ctx, s.userRepo, userID)
	if err != nil {
		return err
	}

	if user.IsRoot() {
		return errors.ErrCannotDeactivateRoot
	}

	user.Active = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("account deactivated", "user_id", user.ID, "email", user.Email.Masked())
	publish(ctx, s.events, ports.Event{Type: ports.EventAccountDeactivated, ActorID: user.ID, Subject: user.Username})

	return nil
}
