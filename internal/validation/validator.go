// Package validation valida DTOs de entrada con go-playground/validator.
//
// Los mensajes por campo se declaran en el propio DTO con el tag `msg`:
//
//	type RegisterRequest struct {
//	    Email string `json:"email" validate:"required,email" msg:"required=Email is required;email=Email must be valid"`
//	}
//
// Si un tag de validación no tiene mensaje declarado se usa una plantilla genérica.
// Los nombres de campo reportados son los del tag json.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Message es el mensaje agregado que acompaña a una falla de validación.
const Message = "Validation failed for one or more fields."

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError es una falla de validación sobre un campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequestValidationError agrupa todas las fallas de un request.
type RequestValidationError struct {
	Fields []FieldError
}

func (e *RequestValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// NewFieldError arma una falla de un solo campo, para reglas que no expresa el validator
// (por ejemplo partes faltantes de un multipart).
func NewFieldError(field, message string) *RequestValidationError {
	return &RequestValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Get devuelve la instancia compartida (cachea la metadata de los structs).
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida s (puntero a struct). Devuelve nil o *RequestValidationError.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := &RequestValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: message(t, fe),
		})
	}
	return out
}

func message(t reflect.Type, fe validator.FieldError) string {
	if t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if m, ok := lookupMsg(sf.Tag.Get("msg"), fe.Tag()); ok {
				return m
			}
		}
	}
	return translate(fe)
}

// lookupMsg busca "tag=mensaje" dentro de un tag msg separado por ';'.
func lookupMsg(raw, tag string) (string, bool) {
	if raw == "" {
		return "", false
	}
	for _, kv := range strings.Split(raw, ";") {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.TrimSpace(k) == tag {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

var templates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be valid",
	"uuid":     "%s must be a valid UUID",
}

var templatesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	if tpl, ok := templates[fe.Tag()]; ok {
		return fmt.Sprintf(tpl, field)
	}
	if tpl, ok := templatesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tpl, field, fe.Param())
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
