package server_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umdev/infoeste/internal/config"
	"github.com/umdev/infoeste/internal/http/server"
)

type apiError struct {
	Timestamp        string `json:"timestamp"`
	Path             string `json:"path"`
	Status           int    `json:"status"`
	Error            string `json:"error"`
	Message          string `json:"message"`
	ValidationErrors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"validationErrors"`
}

type harness struct {
	t   *testing.T
	app *server.App
}

func newHarness(t *testing.T, tweak ...func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.JWT.Secret = strings.Repeat("x", 48)
	cfg.Server.MaxImageBytes = 256 << 10
	cfg.Server.MaxBodyBytes = 512 << 10
	for _, f := range tweak {
		f(cfg)
	}
	require.NoError(t, cfg.Validate())

	app, err := server.Build(context.Background(), cfg, server.Options{Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return &harness{t: t, app: app}
}

func (h *harness) do(method, path, token string, body []byte, contentType string) *httptest.ResponseRecorder {
	h.t.Helper()
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.app.Handler.ServeHTTP(w, r)
	return w
}

func (h *harness) json(method, path, token string, v any) *httptest.ResponseRecorder {
	h.t.Helper()
	var body []byte
	if v != nil {
		var err error
		body, err = json.Marshal(v)
		require.NoError(h.t, err)
	}
	return h.do(method, path, token, body, "application/json")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (h *harness) registerAndLogin(email string) string {
	h.t.Helper()
	w := h.json(http.MethodPost, "/v1/stores/register", "", map[string]string{
		"name": "Loja " + email, "email": email, "password": "secret1", "city": "PP",
	})
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())

	w = h.json(http.MethodPost, "/v1/stores/login", "", map[string]string{"email": email, "password": "secret1"})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		Token string `json:"token"`
	}](h.t, w).Token
}

func pngBytes(n int) []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{1}, n)...)
}

func productForm(t *testing.T, fields map[string]string, img []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if img != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="file"; filename="p.png"`)
		hdr.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

func TestRegister_ValidationErrorShape(t *testing.T) {
	h := newHarness(t)

	w := h.json(http.MethodPost, "/v1/stores/register", "", map[string]string{
		"name": "Loja", "email": "not-an-email", "password": "secret1", "city": "PP",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	e := decode[apiError](t, w)
	assert.Equal(t, "/v1/stores/register", e.Path)
	assert.Equal(t, "Bad Request", e.Error)
	assert.Equal(t, "Validation failed for one or more fields.", e.Message)
	require.Len(t, e.ValidationErrors, 1)
	assert.Equal(t, "email", e.ValidationErrors[0].Field)

	_, err := time.Parse("2006-01-02T15:04:05.000Z07:00", e.Timestamp)
	assert.NoError(t, err)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin("dup@x.com")

	w := h.json(http.MethodPost, "/v1/stores/register", "", map[string]string{
		"name": "Otra", "email": "DUP@x.com", "password": "secret1", "city": "PP",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Store already exists with email: dup@x.com", decode[apiError](t, w).Message)
}

func TestLoginThenProfile(t *testing.T) {
	h := newHarness(t)
	token := h.registerAndLogin("me@x.com")

	w := h.do(http.MethodGet, "/v1/stores/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "me@x.com", decode[struct {
		Email string `json:"email"`
	}](t, w).Email)

	w = h.do(http.MethodGet, "/v1/stores/me", "", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Full authentication is required to access this resource", decode[apiError](t, w).Message)
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin("who@x.com")

	w := h.json(http.MethodPost, "/v1/stores/login", "", map[string]string{"email": "who@x.com", "password": "nope-nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decode[apiError](t, w).Message)
}

func TestLogin_StaleTokenStillReachesLogin(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin("stale@x.com")

	w := h.json(http.MethodPost, "/v1/stores/login", "garbage.token.value", map[string]string{
		"email": "stale@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouting_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := newHarness(t)

	// pública e inexistente → 404 sin pedir credenciales
	id := "00000000-0000-0000-0000-000000000001"
	w := h.do(http.MethodGet, "/v1/stores/"+id, "", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Store not found with id: "+id, decode[apiError](t, w).Message)

	// sin regla → autenticado: un anónimo ve 401 antes que 404
	w = h.do(http.MethodGet, "/v1/nothing-here", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := h.registerAndLogin("r@x.com")
	w = h.do(http.MethodGet, "/v1/nothing-here", token, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No handler found for this request", decode[apiError](t, w).Message)

	w = h.do(http.MethodPatch, "/v1/stores/me", token, nil, "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Request method not supported", decode[apiError](t, w).Message)
}

func TestBadUUIDIs400(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/v1/products/not-a-uuid", "", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid UUID format", decode[apiError](t, w).Message)
}

func TestProductsStoreWithoutIDIs400(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/v1/products/store", "", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "Invalid UUID format", decode[apiError](t, w).Message)
}

func TestProductLifecycle(t *testing.T) {
	h := newHarness(t)
	token := h.registerAndLogin("shop@x.com")

	body, ct := productForm(t, map[string]string{"name": "Pão", "price": "4.5", "stock": "10", "category": "food"}, pngBytes(64))
	w := h.do(http.MethodPost, "/v1/products", token, body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		ID       string `json:"id"`
		ImageURL string `json:"imageUrl"`
	}](t, w)
	assert.Equal(t, "/v1/products/"+created.ID, w.Header().Get("Location"))
	assert.True(t, strings.HasPrefix(created.ImageURL, "data:image/jpeg;base64,"))

	// público
	w = h.do(http.MethodGet, "/v1/products/"+created.ID, "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/v1/products?q=P%C3%A3o", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[struct {
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}](t, w).Meta.Total)

	w = h.do(http.MethodGet, "/v1/products/my", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	// otra tienda no puede tocarlo
	other := h.registerAndLogin("other@x.com")
	w = h.json(http.MethodPut, "/v1/products/"+created.ID, other, map[string]any{"name": "X", "price": 1, "stock": 1})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found or doesn't belong to store", decode[apiError](t, w).Message)

	w = h.do(http.MethodDelete, "/v1/products/"+created.ID, token, nil, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = h.do(http.MethodGet, "/v1/products/"+created.ID, "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductCreate_RequiresToken(t *testing.T) {
	h := newHarness(t)

	body, ct := productForm(t, map[string]string{"name": "x", "price": "1", "stock": "1"}, pngBytes(8))
	w := h.do(http.MethodPost, "/v1/products", "", body, ct)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductCreate_Rejections(t *testing.T) {
	h := newHarness(t)
	token := h.registerAndLogin("rej@x.com")

	body, ct := productForm(t, map[string]string{"name": "x", "price": "abc", "stock": "1"}, pngBytes(8))
	w := h.do(http.MethodPost, "/v1/products", token, body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decode[apiError](t, w)
	require.NotEmpty(t, e.ValidationErrors)
	assert.Equal(t, "price", e.ValidationErrors[0].Field)

	body, ct = productForm(t, map[string]string{"name": "x", "price": "1", "stock": "1"}, nil)
	w = h.do(http.MethodPost, "/v1/products", token, body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Image file is required", decode[apiError](t, w).Message)

	// imagen sobre el límite del service, cuerpo bajo el límite global
	body, ct = productForm(t, map[string]string{"name": "x", "price": "1", "stock": "1"}, pngBytes(300<<10))
	w = h.do(http.MethodPost, "/v1/products", token, body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBodyOverLimitIs413(t *testing.T) {
	h := newHarness(t)
	token := h.registerAndLogin("big@x.com")

	body, ct := productForm(t, map[string]string{"name": "x", "price": "1", "stock": "1"}, pngBytes(600<<10))
	w := h.do(http.MethodPost, "/v1/products", token, body, ct)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Equal(t, http.StatusText(http.StatusRequestEntityTooLarge), decode[apiError](t, w).Error)
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/healthz", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/readyz", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decode[struct {
		Status string `json:"status"`
	}](t, w).Status)

	h.do(http.MethodGet, "/v1/stores", "", nil, "")
	w = h.do(http.MethodGet, "/metrics", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestPreflightNeverNeedsCredentials(t *testing.T) {
	h := newHarness(t)

	r := httptest.NewRequest(http.MethodOptions, "/v1/products/my", nil)
	r.Header.Set("Origin", "https://front.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodGet)
	r.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	h.app.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflightMixedCaseHeaders(t *testing.T) {
	h := newHarness(t)

	r := httptest.NewRequest(http.MethodOptions, "/v1/products", nil)
	r.Header.Set("Origin", "https://front.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")
	w := httptest.NewRecorder()
	h.app.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Headers"))
}

func TestAPIDocsArePublic(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/v3/api-docs", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	var doc struct {
		OpenAPI string                     `json:"openapi"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Contains(t, doc.Paths, "/v1/products/{productId}")
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", w.Header().Get("Content-Security-Policy"))

	w = h.do(http.MethodGet, "/swagger-ui", "", nil, "")
	require.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger-ui/index.html", w.Header().Get("Location"))

	w = h.do(http.MethodGet, "/swagger-ui/index.html", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/v3/api-docs")
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "'unsafe-inline'")
}

func TestAPIDocsDisabled(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		off := false
		c.Docs.Enabled = &off
	})

	w := h.do(http.MethodGet, "/v3/api-docs", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = h.do(http.MethodGet, "/swagger-ui/index.html", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHSTSOnlyBehindTLS(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Server.TrustProxy = true })

	w := h.do(http.MethodGet, "/healthz", "", nil, "")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	h.app.Handler.ServeHTTP(w, r)
	assert.Equal(t, "max-age=15552000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}
