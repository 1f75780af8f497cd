package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
)

var userColumns = columns{
	"username":  {name: "username"},
	"email":     {name: "email"},
	"name":      {name: "name"},
	"role":      {name: "role"},
	"active":    {name: "active", boolean: true},
	"createdAt": {name: "created_at"},
}

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	model := toUserModel(user)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}

	user.CreatedAt = time.UnixMilli(model.CreatedAt)
	user.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindConflicting(ctx context.Context, username, email, excludeID string) (*entities.User, error) {
	return r.findOne(ctx, "(username = ? OR email = ?) AND id <> ?", username, email, excludeID)
}

func (r *UserRepository) FindRoot(ctx context.Context) (*entities.User, error) {
	var model UserModel

	db := forUpdate(ctx, r.getDB(ctx))
	err := db.Where("role = ?", string(entities.RoleRoot)).
		Order("active DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entities.User, error) {
	return r.findOne(ctx, "password_reset_token = ? AND password_reset_expires > ?", tokenHash, now.UnixMilli())
}

func (r *UserRepository) ListByRole(ctx context.Context, role entities.Role, activeOnly bool) ([]*entities.User, error) {
	var models []*UserModel

	query := r.getDB(ctx).Where("role = ?", string(role))
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	return toUserEntities(models)
}

// Update grava todos os campos mutáveis; retorna gorm.ErrRecordNotFound se o usuário sumiu
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)
	now := time.Now()

	result := r.getDB(ctx).Model(&UserModel{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username":               model.Username,
		"password_hash":          model.PasswordHash,
		"name":                   model.Name,
		"email":                  model.Email,
		"phone":                  model.Phone,
		"image":                  model.Image,
		"role":                   model.Role,
		"active":                 model.Active,
		"password_changed_at":    model.PasswordChangedAt,
		"password_reset_token":   model.PasswordResetToken,
		"password_reset_expires": model.PasswordResetExpires,
		"updated_at":             now.UnixMilli(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	user.UpdatedAt = time.UnixMilli(now.UnixMilli())
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, params listquery.Params) ([]*entities.User, int64, error) {
	var models []*UserModel

	total, err := findPage(ctx, r.getDB(ctx), params, userColumns, &models)
	if err != nil {
		return nil, 0, err
	}

	users, err := toUserEntities(models)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var model UserModel

	if err := r.getDB(ctx).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}

// Conversores
func toUserModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:                   user.ID,
		Username:             user.Username,
		PasswordHash:         user.PasswordHash,
		Name:                 user.Name,
		Email:                user.Email.String(),
		Phone:                user.Phone,
		Image:                user.Image,
		Role:                 string(user.Role),
		Active:               user.Active,
		PasswordChangedAt:    toMillis(user.PasswordChangedAt),
		PasswordResetToken:   user.PasswordResetToken,
		PasswordResetExpires: toMillis(user.PasswordResetExpires),
		CreatedAt:            millisOrZero(user.CreatedAt),
		UpdatedAt:            millisOrZero(user.UpdatedAt),
	}
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:                   model.ID,
		Username:             model.Username,
		PasswordHash:         model.PasswordHash,
		Name:                 model.Name,
		Email:                email,
		Phone:                model.Phone,
		Image:                model.Image,
		Role:                 entities.Role(model.Role),
		Active:               model.Active,
		PasswordChangedAt:    fromMillis(model.PasswordChangedAt),
		PasswordResetToken:   model.PasswordResetToken,
		PasswordResetExpires: fromMillis(model.PasswordResetExpires),
		CreatedAt:            time.UnixMilli(model.CreatedAt),
		UpdatedAt:            time.UnixMilli(model.UpdatedAt),
	}, nil
}

func toUserEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := toUserEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}

	return users, nil
}

func toUserRef(model *UserModel) entities.UserRef {
	return entities.UserRef{ID: model.ID, Username: model.Username, Name: model.Name}
}

func toMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}

// millisOrZero deixa o autoCreateTime agir quando a data não foi preenchida
func millisOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
