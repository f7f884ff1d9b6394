// Package errors traduce fallas internas al cuerpo de error estable de la API:
//
//	{"timestamp":"2025-10-29T10:30:00.000-03:00","path":"/v1/products","status":400,
//	 "error":"Bad Request","message":"...","validationErrors":[{"field":"name","message":"..."}]}
//
// validationErrors se omite cuando está vacío.
package errors

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/umdev/infoeste/internal/observability/logger"
	"github.com/umdev/infoeste/internal/validation"
)

// TimestampLayout es ISO-8601 con milisegundos y offset.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// BearerChallenge es el valor de WWW-Authenticate en todo 401.
const BearerChallenge = `Bearer realm="api"`

var (
	location atomic.Pointer[time.Location]
	nowFunc  atomic.Pointer[func() time.Time]
)

// SetLocation fija la zona del timestamp. Se llama una vez al arranque.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	location.Store(loc)
}

// SetClock reemplaza el reloj (tests). Devuelve una función que lo restaura.
func SetClock(now func() time.Time) func() {
	prev := nowFunc.Swap(&now)
	return func() { nowFunc.Store(prev) }
}

func timestamp() string {
	now := time.Now
	if p := nowFunc.Load(); p != nil {
		now = *p
	}
	loc := location.Load()
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc).Format(TimestampLayout)
}

// errorResponse estructura interna para la serialización JSON.
type errorResponse struct {
	Timestamp        string                  `json:"timestamp"`
	Path             string                  `json:"path"`
	Status           int                     `json:"status"`
	Error            string                  `json:"error"`
	Message          string                  `json:"message"`
	ValidationErrors []validation.FieldError `json:"validationErrors,omitempty"`
}

// WriteError traduce err y escribe la respuesta. Los 5xx se loguean con la causa;
// el cliente solo recibe el mensaje genérico.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := Translate(err)
	if appErr == nil {
		appErr = ErrInternal
	}

	log := logger.From(r.Context())
	if appErr.Status >= http.StatusInternalServerError {
		log.Error("request failed", logger.Status(appErr.Status), logger.Err(err))
	} else {
		log.Debug("request rejected",
			logger.Status(appErr.Status),
			logger.String("kind", string(appErr.Kind)),
			logger.Err(appErr.Err),
		)
	}

	resp := errorResponse{
		Timestamp:        timestamp(),
		Path:             r.URL.Path,
		Status:           appErr.Status,
		Error:            http.StatusText(appErr.Status),
		Message:          appErr.Message,
		ValidationErrors: appErr.Fields,
	}

	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	if appErr.Status == http.StatusUnauthorized {
		h.Set("WWW-Authenticate", BearerChallenge)
	}
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(resp)
}

// HandlerFunc es un controller que devuelve su falla en vez de escribirla.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapta un HandlerFunc: todo error devuelto pasa por WriteError.
func Handler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, err)
		}
	}
}
