package repositories

import (
	"context"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
)

// ArticleRepository define a interface para persistência de notícias
type ArticleRepository interface {
	Create(ctx context.Context, article *entities.Article) error
	FindByID(ctx context.Context, id string) (*entities.Article, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, article *entities.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params listquery.Params) ([]*entities.Article, int64, error)
}

var (
	ArticleFilterFields       = []string{"title", "author", "status"}
	ArticleSortFields         = []string{"createdAt", "title", "status"}
	PublicArticleFilterFields = []string{"title", "author"}
	PublicArticleSortFields   = []string{"createdAt", "title"}
)
