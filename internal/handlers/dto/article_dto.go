package dto

import (
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	"github.com/ahbm/hospital-backend/internal/services"
)

// CreateArticleRequest representa a criação de uma notícia
type CreateArticleRequest struct {
	Title            string                 `json:"title" binding:"required,min=3,max=200"`
	Subtitle         *string                `json:"subtitle" binding:"omitempty,max=300"`
	Content          *string                `json:"content"`
	Author           string                 `json:"author" binding:"required,max=100"`
	ImageURL         *string                `json:"imageUrl" binding:"omitempty,url"`
	ImageDescription *string                `json:"imageDescription" binding:"omitempty,max=300"`
	Status           entities.ArticleStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// ToInput converte para o input do serviço
func (r CreateArticleRequest) ToInput() services.CreateArticleInput {
	return services.CreateArticleInput{
		Title:            r.Title,
		Subtitle:         r.Subtitle,
		Content:          r.Content,
		Author:           r.Author,
		ImageURL:         r.ImageURL,
		ImageDescription: r.ImageDescription,
		Status:           r.Status,
	}
}

// UpdateArticleRequest é o PATCH de notícia
type UpdateArticleRequest struct {
	Title            valueobjects.Field[string]                 `json:"title" binding:"omitempty,min=3,max=200"`
	Subtitle         valueobjects.Field[string]                 `json:"subtitle" binding:"omitempty,max=300"`
	Content          valueobjects.Field[string]                 `json:"content"`
	Author           valueobjects.Field[string]                 `json:"author" binding:"omitempty,max=100"`
	ImageURL         valueobjects.Field[string]                 `json:"imageUrl" binding:"omitempty,url"`
	ImageDescription valueobjects.Field[string]                 `json:"imageDescription" binding:"omitempty,max=300"`
	Status           valueobjects.Field[entities.ArticleStatus] `json:"status" binding:"omitempty,oneof=draft published archived"`
}

// ToInput converte para o input do serviço
func (r UpdateArticleRequest) ToInput() services.UpdateArticleInput {
	return services.UpdateArticleInput{
		Title:            r.Title,
		Subtitle:         r.Subtitle,
		Content:          r.Content,
		Author:           r.Author,
		ImageURL:         r.ImageURL,
		ImageDescription: r.ImageDescription,
		Status:           r.Status,
	}
}

// ArticleResponse representa uma notícia no painel e nas rotas públicas
type ArticleResponse struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Subtitle         *string          `json:"subtitle,omitempty"`
	Content          *string          `json:"content,omitempty"`
	Author           string           `json:"author"`
	Slug             string           `json:"slug"`
	ImageURL         *string          `json:"imageUrl,omitempty"`
	ImageDescription *string          `json:"imageDescription,omitempty"`
	Status           string           `json:"status"`
	CreatedBy        UserRefResponse  `json:"createdBy"`
	UpdatedBy        *UserRefResponse `json:"updatedBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ToArticleResponse converte a entidade
func ToArticleResponse(article *entities.Article) ArticleResponse {
	return ArticleResponse{
		ID:               article.ID,
		Title:            article.Title,
		Subtitle:         article.Subtitle,
		Content:          article.Content,
		Author:           article.Author,
		Slug:             article.Slug,
		ImageURL:         article.ImageURL,
		ImageDescription: article.ImageDescription,
		Status:           string(article.Status),
		CreatedBy:        toUserRef(article.CreatedBy),
		UpdatedBy:        toOptionalUserRef(article.UpdatedBy),
		CreatedAt:        article.CreatedAt,
		UpdatedAt:        article.UpdatedAt,
	}
}

// ToArticleResponses converte uma lista
func ToArticleResponses(articles []*entities.Article) []ArticleResponse {
	responses := make([]ArticleResponse, len(articles))
	for i, article := range articles {
		responses[i] = ToArticleResponse(article)
	}
	return responses
}
