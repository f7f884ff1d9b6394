package helpers

import (
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/umdev/infoeste/internal/http/errors"
)

// ReadJSON decodifica el body en v. Tolerante a campos desconocidos.
// El límite de tamaño lo pone WithBodyLimit; si se excede, el error se
// devuelve tal cual para que el traductor responda 413.
func ReadJSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || !strings.HasSuffix(mt, "json") {
			return errors.ErrMalformedInput.WithMessage("Content-Type must be application/json")
		}
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return err
		}
		if stderrors.Is(err, io.EOF) {
			return errors.ErrInvalidJSON.WithMessage("Required request body is missing").WithCause(err)
		}
		return errors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent escribe 204 sin cuerpo.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
