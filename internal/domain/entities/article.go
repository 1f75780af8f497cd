package entities

import (
	"errors"
	"time"
)

// ArticleStatus representa o estado editorial de uma notícia
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
	ArticleArchived  ArticleStatus = "archived"
)

// ErrStatusTransition indica que o status atual não permite a alteração pedida
var ErrStatusTransition = errors.New("status does not allow this change")

// IsValid verifica se o status existe
func (s ArticleStatus) IsValid() bool {
	switch s {
	case ArticleDraft, ArticlePublished, ArticleArchived:
		return true
	}
	return false
}

// UserRef é a projeção mínima do autor/editor de um registro
type UserRef struct {
	ID       string
	Username string
	Name     string
}

// Article representa uma notícia do site do hospital
type Article struct {
	ID               string
	Title            string
	Subtitle         *string
	Content          *string
	Author           string
	Slug             string
	ImageURL         *string
	ImageDescription *string
	Status           ArticleStatus
	CreatedBy        UserRef
	UpdatedBy        *UserRef
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TogglePublish alterna entre published e draft.
// Notícias arquivadas precisam ser restauradas antes.
func (a *Article) TogglePublish() error {
	switch a.Status {
	case ArticlePublished:
		a.Status = ArticleDraft
	case ArticleDraft:
		a.Status = ArticlePublished
	default:
		return ErrStatusTransition
	}
	return nil
}

// ToggleArchive arquiva draft/published; restaurar sempre volta para draft
func (a *Article) ToggleArchive() error {
	switch a.Status {
	case ArticleDraft, ArticlePublished:
		a.Status = ArticleArchived
	case ArticleArchived:
		a.Status = ArticleDraft
	default:
		return ErrStatusTransition
	}
	return nil
}

// IsPublic verifica se a notícia pode aparecer nas rotas públicas
func (a *Article) IsPublic() bool {
	return a.Status == ArticlePublished
}
