package errors

import "errors"

// Kind classifica um erro de domínio; define o status HTTP na borda
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindTooManyRequests
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
	ProblemTypeRateLimited  = "/problems/too-many-requests"
)

// ProblemType retorna o tipo RFC 7807 correspondente ao Kind
func (k Kind) ProblemType() string {
	switch k {
	case KindValidation:
		return ProblemTypeValidation
	case KindAuthentication:
		return ProblemTypeUnauthorized
	case KindAuthorization:
		return ProblemTypeForbidden
	case KindNotFound:
		return ProblemTypeNotFound
	case KindConflict:
		return ProblemTypeConflict
	case KindTooManyRequests:
		return ProblemTypeRateLimited
	default:
		return ProblemTypeInternal
	}
}

// FieldError é o detalhe de validação de um campo
type FieldError struct {
	Field   string
	Message string
}

// DomainError representa um erro de domínio com contexto adicional.
// Message é um message ID de i18n; Params alimenta a interpolação.
type DomainError struct {
	Kind    Kind
	Type    string
	Title   string
	Message string
	Params  map[string]interface{}
	Fields  []FieldError
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is compara por Kind e Message, para que cópias parametrizadas casem com a sentinela
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// With retorna uma cópia com parâmetros de interpolação
func (e *DomainError) With(params map[string]interface{}) *DomainError {
	cp := *e
	cp.Params = params
	return &cp
}

// Wrap retorna uma cópia encadeando a causa
func (e *DomainError) Wrap(err error) *DomainError {
	cp := *e
	cp.Err = err
	return &cp
}

// New cria um DomainError
func New(kind Kind, messageID string) *DomainError {
	return &DomainError{Kind: kind, Type: kind.ProblemType(), Message: messageID}
}

// Validation cria um erro de validação com detalhes por campo
func Validation(messageID string, fields ...FieldError) *DomainError {
	err := New(KindValidation, messageID)
	err.Fields = fields
	return err
}

// KindOf extrai o Kind de qualquer erro (KindUnexpected quando não é de domínio)
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções estão em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound          = New(KindNotFound, "error.user_not_found")
	ErrTargetUserNotFound    = New(KindNotFound, "error.target_user_not_found")
	ErrUsernameAlreadyExists = New(KindConflict, "error.username_already_exists")
	ErrEmailAlreadyExists    = New(KindConflict, "error.email_already_exists")
	ErrEmailRequired         = Validation("error.email_required", FieldError{Field: "email", Message: "error.email_required"})
	ErrInvalidUsername       = Validation("error.invalid_username", FieldError{Field: "username", Message: "validation.username"})
	ErrNameRequired          = Validation("error.name_required", FieldError{Field: "name", Message: "validation.required"})
	ErrInvalidRole           = Validation("error.invalid_role", FieldError{Field: "role", Message: "error.invalid_role"})
	ErrPasswordRequired      = Validation("error.password_required", FieldError{Field: "password", Message: "error.password_required"})
	ErrInvalidCredentials    = New(KindAuthentication, "error.invalid_credentials")
	ErrWrongPassword         = New(KindAuthentication, "error.wrong_password")
	ErrWrongCurrentPassword  = New(KindAuthentication, "error.wrong_current_password")
	ErrUnauthorized          = New(KindAuthentication, "error.unauthorized")
	ErrTokenInvalid          = New(KindAuthentication, "error.token_invalid")
	ErrTokenExpired          = New(KindAuthentication, "error.token_expired")
	ErrTokenUserGone         = New(KindAuthentication, "error.token_user_gone")
	ErrPasswordChanged       = New(KindAuthentication, "error.password_changed")
	ErrUserInactive          = New(KindAuthorization, "error.user_inactive")
	ErrForbidden             = New(KindAuthorization, "error.forbidden")
	ErrHierarchy             = New(KindAuthorization, "error.hierarchy")
	ErrCannotCreateRole      = New(KindAuthorization, "error.cannot_create_role")
	ErrCannotAssignRoot      = New(KindAuthorization, "error.cannot_assign_root")
	ErrCannotChangeRootRole  = New(KindAuthorization, "error.cannot_change_root_role")
	ErrCannotDeleteRoot      = New(KindAuthorization, "error.cannot_delete_root")
	ErrCannotToggleSelf      = New(KindAuthorization, "error.cannot_toggle_self")
	ErrCannotDeactivateRoot  = New(KindAuthorization, "error.cannot_deactivate_root")
	ErrRootAlreadyExists     = New(KindConflict, "error.root_already_exists")
	ErrTransferToSelf        = New(KindConflict, "error.transfer_to_self")
	ErrTransferTargetInvalid = New(KindConflict, "error.transfer_target_invalid")
	ErrResetTokenInvalid     = New(KindValidation, "error.reset_token_invalid")
	ErrEmailDelivery         = New(KindUnexpected, "error.email_delivery")
	ErrArticleNotFound       = New(KindNotFound, "error.article_not_found")
	ErrStatusTransition      = New(KindConflict, "error.status_transition")
	ErrSlugAlreadyExists     = New(KindConflict, "error.slug_already_exists")
	ErrDoctorNotFound        = New(KindNotFound, "error.doctor_not_found")
	ErrScheduleRange         = Validation("error.schedule_range", FieldError{Field: "schedules", Message: "error.schedule_range"})
	ErrDuplicateField        = New(KindConflict, "error.duplicate_field")
	ErrDuplicateValue        = New(KindConflict, "error.duplicate_value")
	ErrDependentRecords      = New(KindConflict, "error.dependent_records")
	ErrRecordNotFound        = New(KindNotFound, "error.record_not_found")
	ErrRouteNotFound         = New(KindNotFound, "error.route_not_found")
	ErrTooManyRequests       = New(KindTooManyRequests, "error.too_many_requests")
	ErrUploadType            = New(KindValidation, "error.upload_type")
	ErrInternal              = New(KindUnexpected, "error.internal")
)

// Domain errors
// Nota: Estes são códigos de erro (message IDs para i18n).
var (
	ErrInvalidEmail   = Validation("error.invalid_email", FieldError{Field: "email", Message: "error.invalid_email"})
	ErrInvalidPayload = New(KindValidation, "error.validation.detail")
	ErrInvalidJSON    = New(KindValidation, "error.invalid_json")
	ErrBodyTooLarge   = New(KindValidation, "error.body_too_large")
	ErrInvalidID      = New(KindValidation, "error.invalid_id")
)
