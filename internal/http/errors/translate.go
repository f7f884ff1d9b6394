package errors

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/umdev/infoeste/internal/domain/repository"
	jwtx "github.com/umdev/infoeste/internal/jwt"
	"github.com/umdev/infoeste/internal/validation"
)

// Translate es la función total de falla → AppError. Ningún error sale del
// borde HTTP sin pasar por acá. Orden de prioridad:
//
//  1. *AppError ya tipado (services/controllers)
//  2. validación de campos        → 400 con validationErrors
//  3. token expirado              → 401 mensaje fijo
//  4. token malformado            → 401 genérico
//  5. recurso inexistente         → 404
//  6. clave única duplicada       → 409
//  7. cuerpo sobre el límite      → 413
//  8. cualquier otra cosa         → 500 genérico (la causa solo va al log)
func Translate(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var verr *validation.RequestValidationError
	if stderrors.As(err, &verr) {
		return ErrValidation.WithFields(verr.Fields).WithCause(err)
	}

	switch {
	case stderrors.Is(err, jwtx.ErrExpired):
		return ErrCredentialExpired.WithCause(err)
	case stderrors.Is(err, jwtx.ErrMalformed):
		return ErrTokenInvalid.WithCause(err)
	case stderrors.Is(err, repository.ErrNotFound):
		return ErrNotFound.WithCause(err)
	case stderrors.Is(err, repository.ErrConflict):
		return ErrConflict.WithCause(err)
	case stderrors.Is(err, multipart.ErrMessageTooLarge):
		return ErrPayloadTooLarge.WithCause(err)
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return ErrPayloadTooLarge.WithCause(err)
	}

	return ErrInternal.WithCause(err)
}
