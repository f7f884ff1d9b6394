package errors

import (
	"fmt"
	"net/http"

	"github.com/umdev/infoeste/internal/validation"
)

// Kind clasifica una falla. Cada Kind tiene un status HTTP estable.
type Kind string

const (
	KindValidationFailed  Kind = "ValidationFailed"
	KindMalformedInput    Kind = "MalformedInput"
	KindCredentialExpired Kind = "CredentialExpired"
	KindCredentialInvalid Kind = "CredentialInvalid"
	KindUnauthenticated   Kind = "Unauthenticated"
	KindNotFound          Kind = "NotFound"
	KindMethodNotAllowed  Kind = "MethodNotAllowed"
	KindConflict          Kind = "Conflict"
	KindPayloadTooLarge   Kind = "PayloadTooLarge"
	KindInternal          Kind = "Internal"
)

// AppError es la falla tipada que llega al borde HTTP.
type AppError struct {
	Kind    Kind
	Status  int
	Message string // se envía al cliente tal cual
	Fields  []validation.FieldError
	Err     error // causa; solo para logs, nunca se serializa
}

// Error implementa la interfaz error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap permite acceder al error original
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithMessage devuelve una COPIA con otro mensaje. Los errores predefinidos no se mutan.
func (e *AppError) WithMessage(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithMessagef es WithMessage con formato.
func (e *AppError) WithMessagef(format string, args ...any) *AppError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithCause devuelve una COPIA con la causa original.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithFields devuelve una COPIA con el detalle por campo.
func (e *AppError) WithFields(fields []validation.FieldError) *AppError {
	cp := *e
	cp.Fields = fields
	return &cp
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

// GenericUnauthorized es el mensaje de todo 401 que no sea login ni expiración.
// No distingue token ausente de token inválido.
const GenericUnauthorized = "Full authentication is required to access this resource"

var (
	ErrValidation = &AppError{
		Kind:    KindValidationFailed,
		Status:  http.StatusBadRequest,
		Message: validation.Message,
	}

	ErrMalformedInput = &AppError{
		Kind:    KindMalformedInput,
		Status:  http.StatusBadRequest,
		Message: "Malformed request",
	}

	ErrInvalidJSON = &AppError{
		Kind:    KindMalformedInput,
		Status:  http.StatusBadRequest,
		Message: "Malformed JSON request",
	}

	ErrInvalidUUID = &AppError{
		Kind:    KindMalformedInput,
		Status:  http.StatusBadRequest,
		Message: "Invalid UUID format",
	}
)

var (
	ErrCredentialExpired = &AppError{
		Kind:    KindCredentialExpired,
		Status:  http.StatusUnauthorized,
		Message: "Token expired. Please login again.",
	}

	ErrTokenInvalid = &AppError{
		Kind:    KindCredentialInvalid,
		Status:  http.StatusUnauthorized,
		Message: GenericUnauthorized,
	}

	// ErrBadCredentials no revela si el e-mail existe.
	ErrBadCredentials = &AppError{
		Kind:    KindCredentialInvalid,
		Status:  http.StatusUnauthorized,
		Message: "Invalid email or password",
	}

	ErrUnauthenticated = &AppError{
		Kind:    KindUnauthenticated,
		Status:  http.StatusUnauthorized,
		Message: GenericUnauthorized,
	}
)

var (
	ErrNotFound = &AppError{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: "Resource not found",
	}

	ErrRouteNotFound = &AppError{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: "No handler found for this request",
	}

	ErrMethodNotAllowed = &AppError{
		Kind:    KindMethodNotAllowed,
		Status:  http.StatusMethodNotAllowed,
		Message: "Request method not supported",
	}

	ErrConflict = &AppError{
		Kind:    KindConflict,
		Status:  http.StatusConflict,
		Message: "Resource already exists",
	}

	ErrPayloadTooLarge = &AppError{
		Kind:    KindPayloadTooLarge,
		Status:  http.StatusRequestEntityTooLarge,
		Message: "File size exceeds maximum allowed limit",
	}

	ErrInternal = &AppError{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "An unexpected error occurred",
	}
)
