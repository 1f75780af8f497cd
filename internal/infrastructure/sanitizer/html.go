// Package sanitizer aplica a lista de tags permitidas no conteúdo das notícias.
package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

var articleTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"blockquote", "p", "a", "ul", "ol", "nl", "li",
	"b", "i", "strong", "em", "strike", "code", "hr", "br", "div",
	"table", "thead", "caption", "tbody", "tr", "th", "td",
	"pre", "img", "span",
}

// ArticleSanitizer implementa ports.ContentSanitizer com bluemonday
type ArticleSanitizer struct {
	policy *bluemonday.Policy
}

// NewArticleSanitizer cria a política usada em notícias
func NewArticleSanitizer() *ArticleSanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(articleTags...)
	p.AllowAttrs("href", "name", "target").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowURLSchemes("http", "https", "ftp", "mailto", "tel")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)

	return &ArticleSanitizer{policy: p}
}

// Sanitize remove tags, atributos e URLs fora da política
func (s *ArticleSanitizer) Sanitize(html string) string {
	if html == "" {
		return html
	}
	return s.policy.Sanitize(html)
}
