package policy

import "net/http"

// DefaultRules es la tabla del marketplace. Las rutas autenticadas explícitas
// van antes que los patrones públicos que las solaparían ({id} vs "my"/"me").
func DefaultRules() []Rule {
	return []Rule{
		// preflight CORS
		{Method: http.MethodOptions, Pattern: "**", Requirement: Public},

		// operativas
		{Method: http.MethodGet, Pattern: "/healthz", Requirement: Public},
		{Method: http.MethodGet, Pattern: "/readyz", Requirement: Public},
		{Method: http.MethodGet, Pattern: "/metrics", Requirement: Public},

		// documentación
		{Method: http.MethodGet, Pattern: "/v3/api-docs/**", Requirement: Public},
		{Method: http.MethodGet, Pattern: "/swagger-ui/**", Requirement: Public},

		// tiendas
		{Method: http.MethodPost, Pattern: "/v1/stores/register", Requirement: Public},
		{Method: http.MethodPost, Pattern: "/v1/stores/login", Requirement: Public},
		{Method: http.MethodGet, Pattern: "/v1/stores/me", Requirement: Authenticated},
		{Method: http.MethodGet, Pattern: "/v1/stores", Requirement: Public},
		{Method: http.MethodGet, Pattern: "/v1/stores/{id}", Requirement: Public},

		// productos
		{Method: http.MethodGet, Pattern: "/v1/products/my", Requirement: Authenticated},
		{Method: http.MethodGet, Pattern: "/v1/products", Requirement: Public},
		{Method: http.MethodGet, Pattern: "/v1/products/store/{id}", Requirement: Public},
		{Method: http.MethodGet, Pattern: "/v1/products/{id}", Requirement: Public},
	}
}

// Default compila DefaultRules.
func Default() *Policy { return MustNew(DefaultRules()) }
