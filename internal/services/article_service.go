package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
)

// fallbackSlug é usado quando o título não tem nenhum caractere aproveitável
const fallbackSlug = "artigo"

// ArticleService contém a lógica de negócio das notícias
type ArticleService struct {
	articleRepo repositories.ArticleRepository
	sanitizer   ports.ContentSanitizer
	events      ports.EventPublisher
	logger      ports.Logger
}

// NewArticleService cria um novo ArticleService
func NewArticleService(
	articleRepo repositories.ArticleRepository,
	sanitizer ports.ContentSanitizer,
	events ports.EventPublisher,
	logger ports.Logger,
) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		sanitizer:   sanitizer,
		events:      events,
		logger:      logger,
	}
}

// CreateArticleInput representa os dados para criar uma notícia
type CreateArticleInput struct {
	Title            string
	Subtitle         *string
	Content          *string
	Author           string
	ImageURL         *string
	ImageDescription *string
	Status           entities.ArticleStatus
}

// CreateArticle cria a notícia e gera o slug a partir do título.
// Slugs repetidos recebem sufixo numérico: titulo, titulo-1, titulo-2...
func (s *ArticleService) CreateArticle(ctx context.Context, actor *entities.User, input CreateArticleInput) (*entities.Article, error) {
	status := input.Status
	if status == "" {
		status = entities.ArticleDraft
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	article := &entities.Article{
		Title:            strings.TrimSpace(input.Title),
		Subtitle:         input.Subtitle,
		Content:          s.sanitize(input.Content),
		Author:           strings.TrimSpace(input.Author),
		Slug:             slug,
		ImageURL:         input.ImageURL,
		ImageDescription: input.ImageDescription,
		Status:           status,
		CreatedBy:        refOf(actor),
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info("article created", "article_id", article.ID, "slug", slug, "by", actor.ID)
	return article, nil
}

func (s *ArticleService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := valueobjects.Slugify(title)
	if base == "" {
		base = fallbackSlug
	}

	for n := 0; ; n++ {
		candidate := valueobjects.SlugCandidate(base, n)
		exists, err := s.articleRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func (s *ArticleService) sanitize(content *string) *string {
	if content == nil || s.sanitizer == nil {
		return content
	}
	clean := s.sanitizer.Sanitize(*content)
	return &clean
}

// GetArticle busca uma notícia pelo ID
func (s *ArticleService) GetArticle(ctx context.Context, id string) (*entities.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, errors.ErrArticleNotFound
	}
	return article, nil
}

// GetPublishedArticle busca uma notícia publicada pelo slug
func (s *ArticleService) GetPublishedArticle(ctx context.Context, slug string) (*entities.Article, error) {
	article, err := s.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil || !article.IsPublic() {
		return nil, errors.ErrArticleNotFound
	}
	return article, nil
}

// ListArticles lista notícias de qualquer status
func (s *ArticleService) ListArticles(ctx context.Context, params listquery.Params) (*Page[*entities.Article], error) {
	articles, total, err := s.articleRepo.List(ctx, params.WithDefaultSort("createdAt", listquery.Desc))
	if err != nil {
		return nil, err
	}
	return newPage(articles, total, params), nil
}

// ListPublishedArticles lista apenas notícias publicadas, qualquer que seja o filtro pedido
func (s *ArticleService) ListPublishedArticles(ctx context.Context, params listquery.Params) (*Page[*entities.Article], error) {
	params = params.WithFilter("status", listquery.Predicate{
		Operator: listquery.OpEq,
		Value:    string(entities.ArticlePublished),
	})
	return s.ListArticles(ctx, params)
}

// UpdateArticleInput são os campos alteráveis de uma notícia.
// O slug não é recalculado quando o título muda.
type UpdateArticleInput struct {
	Title            valueobjects.Field[string]
	Subtitle         valueobjects.Field[string]
	Content          valueobjects.Field[string]
	Author           valueobjects.Field[string]
	ImageURL         valueobjects.Field[string]
	ImageDescription valueobjects.Field[string]
	Status           valueobjects.Field[entities.ArticleStatus]
}

// UpdateArticle aplica os campos presentes e registra quem alterou
func (s *ArticleService) UpdateArticle(ctx context.Context, actor *entities.User, id string, input UpdateArticleInput) (*entities.Article, error) {
	article, err := s.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	if title, ok := input.Title.Get(); ok {
		article.Title = strings.TrimSpace(title)
	}
	if author, ok := input.Author.Get(); ok {
		article.Author = strings.TrimSpace(author)
	}
	if status, ok := input.Status.Get(); ok {
		article.Status = status
	}
	if input.Subtitle.IsPresent() {
		article.Subtitle = input.Subtitle.Ptr()
	}
	if input.Content.IsPresent() {
		article.Content = s.sanitize(input.Content.Ptr())
	}
	if input.ImageURL.IsPresent() {
		article.ImageURL = input.ImageURL.Ptr()
	}
	if input.ImageDescription.IsPresent() {
		article.ImageDescription = input.ImageDescription.Ptr()
	}

	ref := refOf(actor)
	article.UpdatedBy = &ref

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// DeleteArticle remove uma notícia
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	if _, err := s.GetArticle(ctx, id); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, id)
}

// TogglePublish alterna draft <-> published
func (s *ArticleService) TogglePublish(ctx context.Context, actor *entities.User, id string) (*entities.Article, error) {
	return s.transition(ctx, actor, id, (*entities.Article).TogglePublish)
}

// ToggleArchive arquiva ou restaura (sempre para draft)
func (s *ArticleService) ToggleArchive(ctx context.Context, actor *entities.User, id string) (*entities.Article, error) {
	return s.transition(ctx, actor, id, (*entities.Article).ToggleArchive)
}

func (s *ArticleService) transition(ctx context.Context, actor *entities.User, id string, apply func(*entities.Article) error) (*entities.Article, error) {
	article, err := s.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := article.Status
	if err := apply(article); err != nil {
		if stderrors.Is(err, entities.ErrStatusTransition) {
			return nil, errors.ErrStatusTransition
		}
		return nil, err
	}

	ref := refOf(actor)
	article.UpdatedBy = &ref

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info("article status changed", "article_id", article.ID, "from", previous, "to", article.Status)
	publish(ctx, s.events, ports.Event{
		Type:    ports.EventArticleStatus,
		ActorID: actor.ID,
		Subject: article.Slug,
		Payload: map[string]any{"from": previous, "to": article.Status},
	})

	return article, nil
}
