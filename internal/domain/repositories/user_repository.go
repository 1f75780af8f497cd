package repositories

import (
	"context"
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
)

// UserRepository define a interface para persistência de usuários.
// Buscas retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// FindConflicting busca outro usuário com o mesmo username ou email, ignorando excludeID
	FindConflicting(ctx context.Context, username, email, excludeID string) (*entities.User, error)
	// FindRoot retorna o usuário root (ativo primeiro), se houver
	FindRoot(ctx context.Context) (*entities.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entities.User, error)
	ListByRole(ctx context.Context, role entities.Role, activeOnly bool) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params listquery.Params) ([]*entities.User, int64, error)
}

// UserFilterFields são os campos filtráveis na listagem de usuários
var UserFilterFields = []string{"username", "email", "name", "role"}

// UserSortFields são os campos ordenáveis na listagem de usuários
var UserSortFields = []string{"createdAt", "username", "active"}
