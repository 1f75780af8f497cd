package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/handlers/dto"
	"github.com/ahbm/hospital-backend/internal/services"
)

var (
	articleListOptions = listquery.Options{
		FilterFields: []string{"title", "author", "status"},
		SortFields:   []string{"createdAt", "title", "status"},
	}
	publicArticleListOptions = listquery.Options{
		FilterFields: []string{"title", "author"},
		SortFields:   []string{"createdAt", "title"},
	}
)

// ArticleHandler lida com as notícias do painel e do site
type ArticleHandler struct {
	articleService *services.ArticleService
}

// NewArticleHandler cria um novo ArticleHandler
func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ListArticles lista notícias de qualquer status
// @Summary Lista notícias
// @Tags articles
// @Produce json
// @Param page query int false "Página"
// @Param limit query int false "Itens por página"
// @Param sort query string false "campo;asc|desc"
// @Param filter query string false "campo:op[valor],..."
// @Success 200 {object} dto.Response
// @Router /admin/articles [get]
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	page, err := h.articleService.ListArticles(c.Request.Context(), listParams(c, articleListOptions))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated("articles", dto.ToArticleResponses(page.Items), len(page.Items),
		dto.NewPagination(page.Params, page.Total)))
}

// GetArticle busca uma notícia pelo id
// @Summary Busca notícia
// @Tags articles
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/articles/{id} [get]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.articleService.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"article": dto.ToArticleResponse(article)}))
}

// CreateArticle cria uma notícia; o slug vem do título
// @Summary Cria notícia
// @Tags articles
// @Accept json
// @Produce json
// @Param body body dto.CreateArticleRequest true "Notícia"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/articles [post]
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), currentUser(c), req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(gin.H{"article": dto.ToArticleResponse(article)}))
}

// UpdateArticle altera os campos enviados
// @Summary Atualiza notícia
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "ID"
// @Param body body dto.UpdateArticleRequest true "Campos alterados"
// @Success 200 {object} dto.Response
// @Router /admin/articles/{id} [patch]
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req dto.UpdateArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), currentUser(c), c.Param("id"), req.ToInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"article": dto.ToArticleResponse(article)}))
}

// DeleteArticle exclui a notícia
// @Summary Exclui notícia
// @Tags articles
// @Param id path string true "ID"
// @Success 204
// @Router /admin/articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.articleService.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TogglePublish alterna entre publicada e rascunho
// @Summary Publica/despublica
// @Tags articles
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/articles/{id}/publish [patch]
func (h *ArticleHandler) TogglePublish(c *gin.Context) {
	article, err := h.articleService.TogglePublish(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	key := "message.article_unpublished"
	if article.Status == entities.ArticlePublished {
		key = "message.article_published"
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"article": dto.ToArticleResponse(article)}).WithMessage(c, key))
}

// ToggleArchive arquiva ou restaura como rascunho
// @Summary Arquiva/restaura
// @Tags articles
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} dto.Response
// @Router /admin/articles/{id}/archive [patch]
func (h *ArticleHandler) ToggleArchive(c *gin.Context) {
	article, err := h.articleService.ToggleArchive(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	key := "message.article_restored"
	if article.Status == entities.ArticleArchived {
		key = "message.article_archived"
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"article": dto.ToArticleResponse(article)}).WithMessage(c, key))
}

// ListPublished lista as notícias publicadas no site
// @Summary Notícias publicadas
// @Tags public
// @Produce json
// @Success 200 {object} dto.Response
// @Router /public/articles [get]
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	page, err := h.articleService.ListPublishedArticles(c.Request.Context(), listParams(c, publicArticleListOptions))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginated("articles", dto.ToArticleResponses(page.Items), len(page.Items),
		dto.NewPagination(page.Params, page.Total)))
}

// GetPublishedBySlug busca uma notícia publicada pelo slug
// @Summary Notícia publicada
// @Tags public
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /public/articles/{slug} [get]
func (h *ArticleHandler) GetPublishedBySlug(c *gin.Context) {
	article, err := h.articleService.GetPublishedArticle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"article": dto.ToArticleResponse(article)}))
}
