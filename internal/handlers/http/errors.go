package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/handlers/dto"
)

const panicStackKey = "panic_stack"

// ErrorConfig controla a renderização dos erros
type ErrorConfig struct {
	BaseURL     string
	Development bool
}

// ErrorHandler traduz o último erro registrado com c.Error na resposta padrão.
// Os handlers nunca escrevem erros diretamente.
func ErrorHandler(cfg ErrorConfig, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		renderError(c, c.Errors.Last().Err, cfg, log)
	}
}

// Recovery converte panics em erro 500 no mesmo formato
func Recovery(cfg ErrorConfig, log ports.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		c.Set(panicStackKey, string(debug.Stack()))
		renderError(c, fmt.Errorf("panic: %v", recovered), cfg, log)
	})
}

// NoRoute responde 404 para rotas desconhecidas
func NoRoute(c *gin.Context) {
	_ = c.Error(domainerrors.ErrRouteNotFound.With(map[string]interface{}{"Path": c.Request.URL.Path}))
}

func renderError(c *gin.Context, err error, cfg ErrorConfig, log ports.Logger) {
	de := translate(err)
	status := statusOf(de.Kind)

	problemType := de.Type
	if problemType == "" {
		problemType = de.Kind.ProblemType()
	}

	var params []map[string]interface{}
	if de.Params != nil {
		params = append(params, de.Params)
	}

	resp := dto.NewErrorResponseI18n(c, problemType, titleKey(de.Kind), de.Message, status, params...)
	resp.Errors = fieldErrors(c, err, de)
	if cfg.Development {
		resp.Stack = stackOf(c, err)
	}

	attrs := []any{"method", c.Request.Method, "path", c.Request.URL.Path, "status", status, "error", err.Error()}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", attrs...)
	} else {
		log.Debug("request rejected", attrs...)
	}

	c.AbortWithStatusJSON(status, resp)
}

// translate converte qualquer erro em um DomainError
func translate(err error) *domainerrors.DomainError {
	var de *domainerrors.DomainError
	if errors.As(err, &de) {
		return de
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return domainerrors.ErrInvalidPayload.Wrap(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if field := duplicatedColumn(pgErr.Detail); field != "" {
				return domainerrors.ErrDuplicateField.With(map[string]interface{}{"Field": field}).Wrap(err)
			}
			return domainerrors.ErrDuplicateValue.Wrap(err)
		case "23503":
			return domainerrors.ErrDependentRecords.Wrap(err)
		case "23514":
			return domainerrors.ErrInvalidPayload.Wrap(err)
		case "22P02":
			return domainerrors.ErrInvalidID.Wrap(err)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrRecordNotFound.Wrap(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainerrors.ErrDuplicateValue.Wrap(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domainerrors.ErrDependentRecords.Wrap(err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired.Wrap(err)
	case isTokenError(err):
		return domainerrors.ErrTokenInvalid.Wrap(err)
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return domainerrors.ErrBodyTooLarge.Wrap(err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return domainerrors.Validation(domainerrors.ErrInvalidPayload.Message, domainerrors.FieldError{
			Field:   typeErr.Field,
			Message: "validation.default",
		}).Wrap(err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domainerrors.ErrInvalidJSON.Wrap(err)
	}

	return domainerrors.ErrInternal.Wrap(err)
}

func isTokenError(err error) bool {
	for _, target := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenInvalidClaims,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenUsedBeforeIssued,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// duplicatedColumn extrai a coluna de "Key (email)=(a@b.com) already exists."
func duplicatedColumn(detail string) string {
	_, rest, ok := strings.Cut(detail, "Key (")
	if !ok {
		return ""
	}
	column, _, ok := strings.Cut(rest, ")")
	if !ok {
		return ""
	}
	return column
}

func statusOf(kind domainerrors.Kind) int {
	switch kind {
	case domainerrors.KindValidation, domainerrors.KindConflict:
		return http.StatusBadRequest
	case domainerrors.KindAuthentication:
		return http.StatusUnauthorized
	case domainerrors.KindAuthorization:
		return http.StatusForbidden
	case domainerrors.KindNotFound:
		return http.StatusNotFound
	case domainerrors.KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func titleKey(kind domainerrors.Kind) string {
	switch kind {
	case domainerrors.KindValidation:
		return "error.validation.title"
	case domainerrors.KindAuthentication:
		return "error.unauthorized.title"
	case domainerrors.KindAuthorization:
		return "error.forbidden.title"
	case domainerrors.KindNotFound:
		return "error.not_found.title"
	case domainerrors.KindConflict:
		return "error.conflict.title"
	case domainerrors.KindTooManyRequests:
		return "error.too_many_requests.title"
	default:
		return "error.internal.title"
	}
}

func fieldErrors(c *gin.Context, err error, de *domainerrors.DomainError) []dto.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]dto.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			params := map[string]interface{}{"Field": fe.Field(), "Param": fe.Param()}
			key := "validation." + fe.Tag()
			message := dto.T(c, key, params)
			if message == key {
				message = dto.T(c, "validation.default", params)
			}
			out = append(out, dto.ValidationError{Field: fe.Field(), Message: message, Tag: fe.Tag()})
		}
		return out
	}

	if len(de.Fields) == 0 {
		return nil
	}
	out := make([]dto.ValidationError, len(de.Fields))
	for i, f := range de.Fields {
		out[i] = dto.ValidationError{
			Field:   f.Field,
			Message: dto.T(c, f.Message, map[string]interface{}{"Field": f.Field}),
		}
	}
	return out
}

func stackOf(c *gin.Context, err error) string {
	if stack := c.GetString(panicStackKey); stack != "" {
		return err.Error() + "\n" + stack
	}
	return err.Error()
}
