package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/ahbm/hospital-backend/internal/handlers/middleware"
	"github.com/ahbm/hospital-backend/internal/infrastructure/i18n"
)

// T é um helper para traduzir mensagens no contexto do Gin
// Uso: dto.T(c, "message.root_transferred", map[string]interface{}{"Username": "maria"})
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service := i18nService(c)
	if service == nil {
		// Fallback: retornar a chave se serviço não estiver disponível
		return key
	}

	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage retorna o idioma configurado no contexto da requisição
func GetLanguage(c *gin.Context) string {
	if lang, ok := c.Get(middleware.LanguageContextKey); ok {
		if langStr, ok := lang.(string); ok && langStr != "" {
			return langStr
		}
	}

	if service := i18nService(c); service != nil {
		return service.GetDefaultLanguage()
	}
	return "pt-BR"
}

func i18nService(c *gin.Context) *i18n.Service {
	value, exists := c.Get(middleware.I18nServiceContextKey)
	if !exists {
		return nil
	}
	service, _ := value.(*i18n.Service)
	return service
}
