package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
)

var articleColumns = columns{
	"title":     {name: "title"},
	"author":    {name: "author"},
	"status":    {name: "status"},
	"createdAt": {name: "created_at"},
}

// ArticleRepository implementa repositories.ArticleRepository
type ArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository cria um novo ArticleRepository
func NewArticleRepository(db *gorm.DB) repositories.ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, article *entities.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	model := toArticleModel(article)

	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}

	article.CreatedAt = time.UnixMilli(model.CreatedAt)
	article.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*entities.Article, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&ArticleModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update grava os campos editáveis; o slug não é recalculado
func (r *ArticleRepository) Update(ctx context.Context, article *entities.Article) error {
	model := toArticleModel(article)
	now := time.Now()

	result := r.getDB(ctx).Model(&ArticleModel{}).Where("id = ?", article.ID).Updates(map[string]interface{}{
		"title":             model.Title,
		"subtitle":          model.Subtitle,
		"content":           model.Content,
		"author":            model.Author,
		"image_url":         model.ImageURL,
		"image_description": model.ImageDescription,
		"status":            model.Status,
		"updated_by_id":     model.UpdatedByID,
		"updated_at":        now.UnixMilli(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	article.UpdatedAt = time.UnixMilli(now.UnixMilli())
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&ArticleModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ArticleRepository) List(ctx context.Context, params listquery.Params) ([]*entities.Article, int64, error) {
	var models []*ArticleModel

	total, err := findPage(ctx, r.getDB(ctx), params, articleColumns, &models, preloadAuthors)
	if err != nil {
		return nil, 0, err
	}

	articles := make([]*entities.Article, 0, len(models))
	for _, model := range models {
		articles = append(articles, toArticleEntity(model))
	}
	return articles, total, nil
}

func (r *ArticleRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entities.Article, error) {
	var model ArticleModel

	if err := r.getDB(ctx).Scopes(preloadAuthors).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toArticleEntity(&model), nil
}

func (r *ArticleRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}

// preloadAuthors carrega criador e último editor
func preloadAuthors(db *gorm.DB) *gorm.DB {
	return db.Preload("CreatedBy").Preload("UpdatedBy")
}

func toArticleModel(article *entities.Article) *ArticleModel {
	model := &ArticleModel{
		ID:               article.ID,
		Title:            article.Title,
		Subtitle:         article.Subtitle,
		Content:          article.Content,
		Author:           article.Author,
		Slug:             article.Slug,
		ImageURL:         article.ImageURL,
		ImageDescription: article.ImageDescription,
		Status:           string(article.Status),
		CreatedByID:      article.CreatedBy.ID,
		CreatedAt:        millisOrZero(article.CreatedAt),
		UpdatedAt:        millisOrZero(article.UpdatedAt),
	}
	if article.UpdatedBy != nil {
		model.UpdatedByID = &article.UpdatedBy.ID
	}
	return model
}

func toArticleEntity(model *ArticleModel) *entities.Article {
	article := &entities.Article{
		ID:               model.ID,
		Title:            model.Title,
		Subtitle:         model.Subtitle,
		Content:          model.Content,
		Author:           model.Author,
		Slug:             model.Slug,
		ImageURL:         model.ImageURL,
		ImageDescription: model.ImageDescription,
		Status:           entities.ArticleStatus(model.Status),
		CreatedBy:        toUserRef(&model.CreatedBy),
		CreatedAt:        time.UnixMilli(model.CreatedAt),
		UpdatedAt:        time.UnixMilli(model.UpdatedAt),
	}
	if model.UpdatedBy != nil {
		ref := toUserRef(model.UpdatedBy)
		article.UpdatedBy = &ref
	}
	return article
}
