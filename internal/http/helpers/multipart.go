package helpers

import (
	stderrors "errors"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	dtop "github.com/umdev/infoeste/internal/http/dto/product"
	"github.com/umdev/infoeste/internal/http/errors"
)

// multipartMemory es lo que ParseMultipartForm mantiene en memoria antes de
// volcar a disco.
const multipartMemory = 8 << 20

// ParseMultipart parsea un multipart/form-data. Si el cuerpo superó el límite
// devuelve el *http.MaxBytesError (413); cualquier otra falla es 400.
func ParseMultipart(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) || stderrors.Is(err, multipart.ErrMessageTooLarge) {
		return err
	}
	// el reader de MaxBytesReader repite su error: si el parser lo envolvió
	// como texto, una lectura más lo recupera
	if r.Body != nil {
		if _, rerr := r.Body.Read(make([]byte, 1)); stderrors.As(rerr, &tooLarge) {
			return rerr
		}
	}
	if stderrors.Is(err, http.ErrNotMultipart) {
		return errors.ErrMalformedInput.WithMessage("Content-Type must be multipart/form-data").WithCause(err)
	}
	return errors.ErrMalformedInput.WithMessage("Malformed multipart request").WithCause(err)
}

// FormImage lee la parte field. Sin parte devuelve (nil, nil); lee como máximo
// max+1 bytes para que el service detecte el exceso sin cargar todo.
func FormImage(r *http.Request, field string, max int64) (*dtop.Image, error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.ErrMalformedInput.WithMessage("Malformed multipart request").WithCause(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, errors.ErrInternal.WithMessage("Internal processing error: Error processing image file").WithCause(err)
	}
	return &dtop.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// FormFloat lee un campo numérico de form. Ausente o vacío → nil.
func FormFloat(r *http.Request, field string) (*float64, bool) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

// FormInt lee un campo entero de form. Ausente o vacío → nil.
func FormInt(r *http.Request, field string) (*int, bool) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}
