package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/umdev/infoeste/internal/http/docs"
	"github.com/umdev/infoeste/internal/http/errors"
)

const (
	apiDocsPath = "/v3/api-docs"
	// DocsUIPrefix es el prefijo de swagger-ui; el CSP relajado aplica solo acá.
	DocsUIPrefix = "/swagger-ui"
)

// registerDocsRoutes registra el documento OpenAPI y swagger-ui (públicos).
func registerDocsRoutes(r chi.Router) {
	// GET /v3/api-docs - OpenAPI 3
	r.Get(apiDocsPath, errors.Handler(serveAPIDocs))

	// GET /swagger-ui - UI que consume /v3/api-docs
	r.Get(DocsUIPrefix, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsUIPrefix+"/index.html", http.StatusMovedPermanently)
	})
	r.Get(DocsUIPrefix+"/*", httpSwagger.Handler(
		httpSwagger.URL(apiDocsPath),
		httpSwagger.InstanceName(docs.InstanceName),
	))
}

func serveAPIDocs(w http.ResponseWriter, r *http.Request) error {
	doc, err := docs.JSON()
	if err != nil {
		return errors.ErrInternal.WithCause(err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
	return nil
}
