package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	domainerrors "github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	"github.com/ahbm/hospital-backend/internal/services"
)

var _ = Describe("ArticleService", func() {
	var (
		f      *fixture
		author *entities.User
	)

	create := func(title string, status entities.ArticleStatus) *entities.Article {
		article, err := f.article.CreateArticle(f.ctx, author, services.CreateArticleInput{
			Title:  title,
			Author: "Assessoria de Imprensa",
			Status: status,
		})
		Expect(err).NotTo(HaveOccurred())
		return article
	}

	BeforeEach(func() {
		f = newFixture()
		author = f.seedUser("joao", entities.RoleJournalist, true)
	})

	Describe("CreateArticle", func() {
		It("gera slugs com sufixo numérico para títulos repetidos", func() {
			Expect(create("Hello World", "").Slug).To(Equal("hello-world"))
			Expect(create("Hello World", "").Slug).To(Equal("hello-world-1"))
			Expect(create("hello   world!", "").Slug).To(Equal("hello-world-2"))
		})

		It("normaliza acentos no slug", func() {
			Expect(create("Campanha de Vacinação em Maracaí", "").Slug).To(Equal("campanha-de-vacinacao-em-maracai"))
		})

		It("usa um slug padrão para títulos sem letras", func() {
			Expect(create("!!!", "").Slug).To(Equal("artigo"))
		})

		It("começa como rascunho e guarda o autor", func() {
			article := create("Nova ala", "")
			Expect(article.Status).To(Equal(entities.ArticleDraft))

			stored, err := f.article.GetArticle(f.ctx, article.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.CreatedBy.Username).To(Equal("joao"))
		})

		It("limpa o HTML do conteúdo", func() {
			content := `<p>Texto</p><script>alert(1)</script>`
			article, err := f.article.CreateArticle(f.ctx, author, services.CreateArticleInput{
				Title:   "Com script",
				Author:  "Redação",
				Content: &content,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*article.Content).To(ContainSubstring("<p>Texto</p>"))
			Expect(*article.Content).NotTo(ContainSubstring("script"))
		})
	})

	Describe("transições de status", func() {
		It("alterna rascunho e publicado", func() {
			article := create("Ida e volta", entities.ArticleDraft)

			published, err := f.article.TogglePublish(f.ctx, author, article.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(published.Status).To(Equal(entities.ArticlePublished))

			draft, err := f.article.TogglePublish(f.ctx, author, article.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(draft.Status).To(Equal(entities.ArticleDraft))
			Expect(f.events.types()).To(ContainElement(ports.EventArticleStatus))
		})

		It("não publica notícia arquivada", func() {
			article := create("Arquivada", entities.ArticleArchived)

			_, err := f.article.TogglePublish(f.ctx, author, article.ID)
			Expect(err).To(MatchError(domainerrors.ErrStatusTransition))

			stored, err := f.article.GetArticle(f.ctx, article.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(entities.ArticleArchived))
		})

		It("arquiva publicada e restaura como rascunho", func() {
			article := create("Vai e volta", entities.ArticlePublished)

			archived, err := f.article.ToggleArchive(f.ctx, author, article.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(archived.Status).To(Equal(entities.ArticleArchived))

			restored, err := f.article.ToggleArchive(f.ctx, author, article.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.Status).To(Equal(entities.ArticleDraft))
		})

		It("falha para notícia inexistente", func() {
			_, err := f.article.TogglePublish(f.ctx, author, "00000000-0000-0000-0000-000000000000")
			Expect(err).To(MatchError(domainerrors.ErrArticleNotFound))
		})
	})

	Describe("UpdateArticle", func() {
		It("mantém o slug ao trocar o título e registra o editor", func() {
			article := create("Título original", "")
			editor := f.seedUser("maria", entities.RoleAdmin, true)

			updated, err := f.article.UpdateArticle(f.ctx, editor, article.ID, services.UpdateArticleInput{
				Title:    valueobjects.Set("Título novo"),
				Subtitle: valueobjects.Set("Subtítulo"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Slug).To(Equal("titulo-original"))

			stored, err := f.article.GetArticle(f.ctx, article.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal("Título novo"))
			Expect(*stored.Subtitle).To(Equal("Subtítulo"))
			Expect(stored.UpdatedBy).NotTo(BeNil())
			Expect(stored.UpdatedBy.Username).To(Equal("maria"))
		})
	})

	Describe("rotas públicas", func() {
		It("lista apenas publicadas mesmo com filtro de status", func() {
			create("Rascunho", entities.ArticleDraft)
			create("Publicada", entities.ArticlePublished)
			create("Arquivada", entities.ArticleArchived)

			params := listquery.Params{Page: 1, Limit: 10}.WithFilter("status", listquery.Predicate{
				Operator: listquery.OpEq,
				Value:    "draft",
			})

			page, err := f.article.ListPublishedArticles(f.ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Title).To(Equal("Publicada"))
		})

		It("não expõe rascunho pelo slug", func() {
			draft := create("Secreta", entities.ArticleDraft)

			_, err := f.article.GetPublishedArticle(f.ctx, draft.Slug)
			Expect(err).To(MatchError(domainerrors.ErrArticleNotFound))

			_, err = f.article.TogglePublish(f.ctx, author, draft.ID)
			Expect(err).NotTo(HaveOccurred())

			found, err := f.article.GetPublishedArticle(f.ctx, draft.Slug)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(draft.ID))
		})
	})

	Describe("DeleteArticle", func() {
		It("remove e depois informa não encontrada", func() {
			article := create("Temporária", "")

			Expect(f.article.DeleteArticle(f.ctx, article.ID)).To(Succeed())
			Expect(f.article.DeleteArticle(f.ctx, article.ID)).To(MatchError(domainerrors.ErrArticleNotFound))
		})
	})
})
