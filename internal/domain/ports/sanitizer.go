package ports

// ContentSanitizer limpa HTML enviado pelo editor de notícias
type ContentSanitizer interface {
	Sanitize(html string) string
}
