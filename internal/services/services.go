// Package services contém as regras de negócio do painel administrativo.
// Handlers chamam os serviços; os serviços falam com o banco apenas por
// meio dos repositórios e da unidade de trabalho.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
)

// Page é uma página de resultados com o total de registros do filtro
type Page[T any] struct {
	Items  []T
	Total  int64
	Params listquery.Params
}

// TotalPages calcula o número de páginas do filtro
func (p Page[T]) TotalPages() int {
	return p.Params.TotalPages(p.Total)
}

func newPage[T any](items []T, total int64, params listquery.Params) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Params: params}
}

// ProfileInput são os campos de perfil alteráveis via PATCH
type ProfileInput struct {
	Name  valueobjects.Field[string]
	Email valueobjects.Field[string]
	Phone valueobjects.Field[string]
	Image valueobjects.Field[string]
}

// applyProfile aplica os campos presentes; e-mail nunca pode ser removido
func applyProfile(ctx context.Context, users repositories.UserRepository, user *entities.User, in ProfileInput) error {
	if in.Email.IsNull() {
		return errors.ErrEmailRequired
	}

	if name, ok := in.Name.Get(); ok {
		user.Name = strings.TrimSpace(name)
	}

	if raw, ok := in.Email.Get(); ok {
		email, err := valueobjects.NewEmail(raw)
		if err != nil {
			return errors.ErrInvalidEmail
		}
		if !email.Equal(user.Email) {
			existing, err := users.FindByEmail(ctx, email.String())
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != user.ID {
				return errors.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if in.Phone.IsPresent() {
		user.Phone = in.Phone.Ptr()
	}
	if in.Image.IsPresent() {
		user.Image = in.Image.Ptr()
	}

	return nil
}

// ensureUnique falha se username ou e-mail já pertencem a outro usuário
func ensureUnique(ctx context.Context, users repositories.UserRepository, username string, email valueobjects.Email, excludeID string) error {
	existing, err := users.FindConflicting(ctx, username, email.String(), excludeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.Username == username {
		return errors.ErrUsernameAlreadyExists
	}
	return errors.ErrEmailAlreadyExists
}

func requireUser(ctx context.Context, users repositories.UserRepository, id string) (*entities.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func requireUsername(ctx context.Context, users repositories.UserRepository, username string) (*entities.User, error) {
	user, err := users.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// validateUser traduz as regras da entidade para erros de validação da API
func validateUser(user *entities.User) error {
	switch user.Validate() {
	case nil:
		return nil
	case entities.ErrEmailMissing:
		return errors.ErrEmailRequired
	case entities.ErrUsernameFormat:
		return errors.ErrInvalidUsername
	case entities.ErrNameMissing:
		return errors.ErrNameRequired
	default:
		return errors.ErrInvalidRole
	}
}

func refOf(user *entities.User) entities.UserRef {
	return entities.UserRef{ID: user.ID, Username: user.Username, Name: user.Name}
}

func publish(ctx context.Context, events ports.EventPublisher, event ports.Event) {
	if events == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	events.Publish(ctx, event)
}
