package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/ahbm/hospital-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware escolhe o catálogo de cada requisição
type I18nMiddleware struct {
	i18nService *i18n.Service
	supported   []string
	matcher     language.Matcher
}

// NewI18nMiddleware cria um novo middleware de i18n.
// O idioma padrão vem primeiro no matcher e é o resultado quando nada casa.
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	supported := []string{i18nService.GetDefaultLanguage()}
	for _, lang := range i18nService.GetSupportedLanguages() {
		if lang != supported[0] {
			supported = append(supported, lang)
		}
	}

	tags := make([]language.Tag, len(supported))
	for i, lang := range supported {
		tags[i] = language.Make(lang)
	}

	return &I18nMiddleware{
		i18nService: i18nService,
		supported:   supported,
		matcher:     language.NewMatcher(tags),
	}
}

// DetectLanguage resolve o idioma na ordem ?lang=, Accept-Language (com pesos q) e padrão.
// O idioma escolhido volta no header Content-Language.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.match(c.Query("lang"))
		if lang == "" {
			lang = m.matchAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = m.supported[0]
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

func (m *I18nMiddleware) match(raw string) string {
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	return m.best(tag)
}

// matchAcceptLanguage: "en-US;q=0.5,pt;q=0.9" -> "pt-BR"
func (m *I18nMiddleware) matchAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return m.best(tags...)
}

func (m *I18nMiddleware) best(tags ...language.Tag) string {
	_, index, confidence := m.matcher.Match(tags...)
	if confidence == language.No {
		return ""
	}
	return m.supported[index]
}
