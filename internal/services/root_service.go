package services

import (
	"context"
	"strings"
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
)

// RootService mantém o ciclo de vida da conta root:
// criação inicial, transferência e operações exclusivas do root.
type RootService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	events   ports.EventPublisher
	logger   ports.Logger
	now      func() time.Time
}

// NewRootService cria um novo RootService
func NewRootService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	events ports.EventPublisher,
	logger ports.Logger,
) *RootService {
	return &RootService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// RootStatus descreve a situação da conta root
type RootStatus struct {
	Exists bool
	Active bool
}

// Status consulta a conta root sem alterar nada
func (s *RootService) Status(ctx context.Context) (RootStatus, error) {
	root, err := s.userRepo.FindRoot(ctx)
	if err != nil {
		return RootStatus{}, err
	}
	if root == nil {
		return RootStatus{}, nil
	}
	if !root.Active {
		s.logger.Warn("root account exists but is inactive", "root_id", root.ID)
	}
	return RootStatus{Exists: true, Active: root.Active}, nil
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Phone    *string
	Image    *string
	Role     entities.Role
}

func (in CreateUserInput) toUser() (*entities.User, error) {
	email, err := valueobjects.NewEmail(in.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	return &entities.User{
		Username: strings.ToLower(strings.TrimSpace(in.Username)),
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Phone:    in.Phone,
		Image:    in.Image,
		Role:     in.Role,
		Active:   true,
	}, nil
}

// CreateRoot cria a conta root. Só funciona enquanto não houver root;
// a verificação é refeita dentro da transação. O papel enviado é ignorado.
func (s *RootService) CreateRoot(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	user, err := input.toUser()
	if err != nil {
		return nil, err
	}
	user.Role = entities.RoleRoot
	if err := validateUser(user); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		root, err := s.userRepo.FindRoot(txCtx)
		if err != nil {
			return err
		}
		if root != nil {
			return errors.ErrRootAlreadyExists
		}

		if err := ensureUnique(txCtx, s.userRepo, user.Username, user.Email, ""); err != nil {
			return err
		}

		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("root user created", "user_id", user.ID, "email", user.Email.Masked())
	publish(ctx, s.events, ports.Event{Type: ports.EventRootCreated, ActorID: user.ID, Subject: user.Username})

	return user, nil
}

// Transfer é o resultado de uma transferência de root
type Transfer struct {
	FormerRoot *entities.User
	NewRoot    *entities.User
}

// TransferRoot passa o papel root para um admin ativo.
// O rebaixamento do root atual e a promoção do alvo são gravados na mesma transação.
func (s *RootService) TransferRoot(ctx context.Context, actorID, targetUsername, password string) (*Transfer, error) {
	actor, err := s.verifyRoot(ctx, actorID, password)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByUsername(ctx, strings.ToLower(targetUsername))
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.ErrTargetUserNotFound
	}
	if target.ID == actor.ID {
		return nil, errors.ErrTransferToSelf
	}
	if !target.Active || !target.IsAdmin() {
		return nil, errors.ErrTransferTargetInvalid
	}

	var result Transfer
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.userRepo.FindRoot(txCtx)
		if err != nil {
			return err
		}
		if current == nil || current.ID != actor.ID {
			return errors.ErrForbidden
		}

		next, err := s.userRepo.FindByID(txCtx, target.ID)
		if err != nil {
			return err
		}
		if next == nil {
			return errors.ErrTargetUserNotFound
		}
		if !next.Active || !next.IsAdmin() {
			return errors.ErrTransferTargetInvalid
		}

		// rebaixar antes de promover: o banco aceita um único root
		current.Role = entities.RoleAdmin
		if err := s.userRepo.Update(txCtx, current); err != nil {
			return err
		}

		next.Role = entities.RoleRoot
		if err := s.userRepo.Update(txCtx, next); err != nil {
			return err
		}

		result = Transfer{FormerRoot: current, NewRoot: next}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("root role transferred", "from", result.FormerRoot.ID, "to", result.NewRoot.ID)
	publish(ctx, s.events, ports.Event{
		Type:    ports.EventRootTransferred,
		ActorID: actor.ID,
		Subject: result.NewRoot.Username,
		Payload: map[string]any{"from": result.FormerRoot.Username, "to": result.NewRoot.Username},
	})

	return &result, nil
}

// EligibleForTransfer lista os admins ativos
func (s *RootService) EligibleForTransfer(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.ListByRole(ctx, entities.RoleAdmin, true)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*entities.User{}
	}
	return users, nil
}

// DeleteUser remove definitivamente um usuário que não seja root.
// Exige a senha do root que executa a operação.
func (s *RootService) DeleteUser(ctx context.Context, actorID, username, password string) error {
	target, err := requireUsername(ctx, s.userRepo, username)
	if err != nil {
		return err
	}
	if target.IsRoot() {
		return errors.ErrCannotDeleteRoot
	}

	if _, err := s.verifyRoot(ctx, actorID, password); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", target.ID, "by", actorID)
	return nil
}

// UpdatePassword define a senha de qualquer usuário
func (s *RootService) UpdatePassword(ctx context.Context, username, newPassword string) (*entities.User, error) {
	target, err := requireUsername(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	target.SetPassword(hash, s.now())
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Info("password set by root", "user_id", target.ID)
	return target, nil
}

func (s *RootService) verifyRoot(ctx context.Context, actorID, password string) (*entities.User, error) {
	actor, err := requireUser(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsRoot() {
		return nil, errors.ErrForbidden
	}
	if !s.hasher.Compare(password, actor.PasswordHash) {
		return nil, errors.ErrWrongPassword
	}
	return actor, nil
}
