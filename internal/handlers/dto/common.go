package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/ahbm/hospital-backend/internal/domain/listquery"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response é o envelope de respostas bem-sucedidas
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Results *int        `json:"results,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success envolve data no envelope padrão
func Success(data interface{}) Response {
	return Response{Status: StatusSuccess, Data: data}
}

// SuccessMessage responde apenas com uma mensagem traduzida
func SuccessMessage(c *gin.Context, key string, params ...map[string]interface{}) Response {
	return Response{Status: StatusSuccess, Message: T(c, key, params...)}
}

// WithMessage acrescenta uma mensagem traduzida ao envelope
func (r Response) WithMessage(c *gin.Context, key string, params ...map[string]interface{}) Response {
	r.Message = T(c, key, params...)
	return r
}

// Pagination descreve a página devolvida numa listagem
type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// NewPagination calcula os metadados da página
func NewPagination(params listquery.Params, total int64) Pagination {
	return Pagination{
		TotalItems:  total,
		TotalPages:  params.TotalPages(total),
		CurrentPage: params.Page,
		PageSize:    params.Limit,
	}
}

// Paginated monta data: {<key>: items, pagination: {...}} com results = itens da página
func Paginated(key string, items interface{}, count int, pagination Pagination) Response {
	return Response{
		Status:  StatusSuccess,
		Results: &count,
		Data: gin.H{
			key:          items,
			"pagination": pagination,
		},
	}
}

// List monta data: {<key>: items} com results
func List(key string, items interface{}, count int) Response {
	return Response{
		Status:  StatusSuccess,
		Results: &count,
		Data:    gin.H{key: items},
	}
}

// ErrorResponse é o envelope de erro com os membros do RFC 7807 (Problem Details)
type ErrorResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Code     int               `json:"code"`
	Instance string            `json:"instance,omitempty"`
	Stack    string            `json:"stack,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// NewErrorResponseI18n cria uma resposta de erro usando i18n
func NewErrorResponseI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) ErrorResponse {
	// Pegar base URL da configuração
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, T(c, detailKey, params...))
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey)
	problem.Instance = c.Request.URL.Path

	envelope := StatusFail
	if status >= 500 {
		envelope = StatusError
	}

	return ErrorResponse{
		Status:   envelope,
		Message:  problem.Detail,
		Type:     problem.Type,
		Title:    problem.Title,
		Code:     problem.Status,
		Instance: problem.Instance,
	}
}
