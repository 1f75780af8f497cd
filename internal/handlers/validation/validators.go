// Package validation registra as regras de binding do domínio no validator do gin.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	"github.com/ahbm/hospital-backend/internal/handlers/dto"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9]+$`)
	phonePattern    = regexp.MustCompile(`^\d{1,11}$`)
)

// validationValuer é implementado por valueobjects.Field
type validationValuer interface {
	ValidationValue() interface{}
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register instala as regras customizadas no engine padrão do gin (uma vez por processo)
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn instala as regras em um validator qualquer (usado nos testes)
func RegisterOn(v *validator.Validate) error {
	// Erros por campo usam o nome do JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// Campos de PATCH: ausente e null não são validados
	v.RegisterCustomTypeFunc(fieldValue,
		valueobjects.Field[string]{},
		valueobjects.Field[bool]{},
		valueobjects.Field[entities.Role]{},
		valueobjects.Field[entities.ArticleStatus]{},
		valueobjects.Field[[]dto.ScheduleRequest]{},
	)

	rules := map[string]validator.Func{
		"username": func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		},
		"uf": func(fl validator.FieldLevel) bool {
			return entities.IsValidState(strings.ToUpper(fl.Field().String()))
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			return entities.IsValidClock(fl.Field().String())
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return entities.DayOfWeek(fl.Field().String()).IsValid()
		},
		"br_phone": func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func fieldValue(v reflect.Value) interface{} {
	if f, ok := v.Interface().(validationValuer); ok {
		return f.ValidationValue()
	}
	return nil
}
