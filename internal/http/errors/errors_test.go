package errors

import (
	stderrors "errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/umdev/infoeste/internal/domain/repository"
	jwtx "github.com/umdev/infoeste/internal/jwt"
	"github.com/umdev/infoeste/internal/observability/logger"
	"github.com/umdev/infoeste/internal/validation"
)

type body struct {
	Timestamp        string                  `json:"timestamp"`
	Path             string                  `json:"path"`
	Status           int                     `json:"status"`
	Error            string                  `json:"error"`
	Message          string                  `json:"message"`
	ValidationErrors []validation.FieldError `json:"validationErrors"`
}

func TestTranslate_Table(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		kind   Kind
		status int
		msg    string
	}{
		{"app error passthrough", ErrNotFound.WithMessage("Store not found with id: 42"), KindNotFound, 404, "Store not found with id: 42"},
		{"wrapped app error", fmt.Errorf("svc: %w", ErrBadCredentials), KindCredentialInvalid, 401, "Invalid email or password"},
		{"validation", validation.NewFieldError("email", "Email is required"), KindValidationFailed, 400, validation.Message},
		{"malformed input", ErrInvalidUUID, KindMalformedInput, 400, "Invalid UUID format"},
		{"expired token", jwtx.ErrExpired, KindCredentialExpired, 401, "Token expired. Please login again."},
		{"malformed token", jwtx.ErrMalformed, KindCredentialInvalid, 401, GenericUnauthorized},
		{"unauthenticated", ErrUnauthenticated, KindUnauthenticated, 401, GenericUnauthorized},
		{"not found", fmt.Errorf("get: %w", repository.ErrNotFound), KindNotFound, 404, "Resource not found"},
		{"conflict", fmt.Errorf("%w: stores_email_lower_uq", repository.ErrConflict), KindConflict, 409, "Resource already exists"},
		{"max bytes", &http.MaxBytesError{Limit: 10}, KindPayloadTooLarge, 413, "File size exceeds maximum allowed limit"},
		{"multipart too large", multipart.ErrMessageTooLarge, KindPayloadTooLarge, 413, "File size exceeds maximum allowed limit"},
		{"anything else", stderrors.New("db exploded at 10.0.0.3"), KindInternal, 500, "An unexpected error occurred"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Translate(c.err)
			require.NotNil(t, got)
			assert.Equal(t, c.kind, got.Kind)
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.msg, got.Message)
		})
	}
	assert.Nil(t, Translate(nil))
}

func TestTranslate_DoesNotMutatePredeclared(t *testing.T) {
	_ = Translate(stderrors.New("x"))
	_ = ErrNotFound.WithMessage("changed")
	assert.Nil(t, ErrInternal.Err)
	assert.Equal(t, "Resource not found", ErrNotFound.Message)
}

func TestWriteError_Shape(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	SetLocation(loc)
	defer SetLocation(time.UTC)
	defer SetClock(func() time.Time { return time.Date(2025, 10, 29, 13, 30, 0, 0, time.UTC) })()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/stores/register", nil)
	WriteError(rec, req, validation.NewFieldError("email", "Email is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "2025-10-29T10:30:00.000-03:00", b.Timestamp)
	assert.Equal(t, "/v1/stores/register", b.Path)
	assert.Equal(t, 400, b.Status)
	assert.Equal(t, "Bad Request", b.Error)
	assert.Equal(t, validation.Message, b.Message)
	require.Len(t, b.ValidationErrors, 1)
	assert.Equal(t, "email", b.ValidationErrors[0].Field)
}

func TestWriteError_OmitsEmptyValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/v1/stores/me", nil), ErrUnauthenticated)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, BearerChallenge, rec.Header().Get("WWW-Authenticate"))
	assert.NotContains(t, rec.Body.String(), "validationErrors")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.ElementsMatch(t, []string{"timestamp", "path", "status", "error", "message"}, keys(raw))
}

func TestWriteError_InternalHidesCauseButLogsIt(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.Replace(zap.New(core))()

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil), stderrors.New("pq: password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")

	entries := logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.True(t, strings.Contains(fmt.Sprint(entries[0].ContextMap()["error"]), "hunter2"))
}

func TestHandler_AdaptsReturnedErrors(t *testing.T) {
	h := Handler(func(w http.ResponseWriter, r *http.Request) error {
		if r.URL.Query().Get("fail") == "1" {
			return fmt.Errorf("lookup: %w", repository.ErrConflict)
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x?fail=1", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
