package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("cópia parametrizada casa com a sentinela", func(t *testing.T) {
		err := ErrDuplicateField.With(map[string]interface{}{"Field": "slug"})
		if !errors.Is(err, ErrDuplicateField) {
			t.Error("esperava que errors.Is reconhecesse a sentinela")
		}
	})

	t.Run("erro encadeado é encontrado", func(t *testing.T) {
		wrapped := fmt.Errorf("transfer: %w", ErrTransferToSelf)
		if !errors.Is(wrapped, ErrTransferToSelf) {
			t.Error("esperava encontrar a sentinela encadeada")
		}
		if errors.Is(wrapped, ErrTransferTargetInvalid) {
			t.Error("sentinelas diferentes não devem casar")
		}
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validação", ErrEmailRequired, KindValidation},
		{"autenticação", ErrWrongPassword, KindAuthentication},
		{"autorização", ErrCannotDeleteRoot, KindAuthorization},
		{"não encontrado", ErrUserNotFound, KindNotFound},
		{"conflito", ErrStatusTransition, KindConflict},
		{"erro comum", errors.New("boom"), KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("esperava %d, obteve %d", tt.want, got)
			}
		})
	}
}
