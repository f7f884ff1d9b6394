package policy_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/umdev/infoeste/internal/http/policy"
)

func TestDefaultRules_RouteMatrix(t *testing.T) {
	p := policy.Default()

	cases := []struct {
		method string
		path   string
		want   policy.Requirement
	}{
		{http.MethodOptions, "/v1/stores/me", policy.Public},
		{http.MethodOptions, "/anything/at/all", policy.Public},
		{http.MethodOptions, "/", policy.Public},
		{http.MethodPost, "/v1/stores/register", policy.Public},
		{http.MethodPost, "/v1/stores/login", policy.Public},
		{http.MethodGet, "/v1/products", policy.Public},
		{http.MethodGet, "/v1/products/6f1c1c2e-8d5b-4b8a-9a7e-0c5f3e2a1b00", policy.Public},
		{http.MethodGet, "/v1/products/store/6f1c1c2e-8d5b-4b8a-9a7e-0c5f3e2a1b00", policy.Public},
		{http.MethodGet, "/v1/stores", policy.Public},
		{http.MethodGet, "/v1/stores/abc", policy.Public},
		{http.MethodGet, "/healthz", policy.Public},
		{http.MethodGet, "/readyz", policy.Public},
		{http.MethodGet, "/metrics", policy.Public},
		{http.MethodGet, "/v3/api-docs", policy.Public},
		{http.MethodGet, "/swagger-ui", policy.Public},
		{http.MethodGet, "/swagger-ui/index.html", policy.Public},
		{http.MethodGet, "/swagger-ui/swagger-ui-bundle.js", policy.Public},

		{http.MethodGet, "/v1/stores/me", policy.Authenticated},
		{http.MethodGet, "/v1/products/my", policy.Authenticated},
		{http.MethodPost, "/v1/products", policy.Authenticated},
		{http.MethodPut, "/v1/products/abc", policy.Authenticated},
		{http.MethodPut, "/v1/products/abc/image", policy.Authenticated},
		{http.MethodDelete, "/v1/products/abc", policy.Authenticated},
		// {id} acepta "store"; el controller responde 400 Invalid UUID format
		{http.MethodGet, "/v1/products/store", policy.Public},
		{http.MethodGet, "/v1/products/abc/extra", policy.Authenticated},
		{http.MethodPost, "/v1/stores/login/", policy.Authenticated},
		{http.MethodGet, "/v1//products", policy.Authenticated},
		{http.MethodGet, "/v1/products/", policy.Authenticated},
		{http.MethodHead, "/v1/products", policy.Authenticated},
		{http.MethodGet, "/", policy.Authenticated},
		{http.MethodGet, "/v2/products", policy.Authenticated},
		{http.MethodPost, "/v3/api-docs", policy.Authenticated},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			got, _ := p.Decide(tc.method, tc.path)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecide_FirstMatchWins(t *testing.T) {
	p := policy.MustNew([]policy.Rule{
		{Method: http.MethodGet, Pattern: "/items/special", Requirement: policy.Authenticated},
		{Method: http.MethodGet, Pattern: "/items/{id}", Requirement: policy.Public},
		{Method: http.MethodGet, Pattern: "/items/special", Requirement: policy.Public},
	})

	req, rule := p.Decide(http.MethodGet, "/items/special")
	assert.Equal(t, policy.Authenticated, req)
	require.NotNil(t, rule)
	assert.Equal(t, "/items/special", rule.Pattern)

	req, rule = p.Decide(http.MethodGet, "/items/42")
	assert.Equal(t, policy.Public, req)
	require.NotNil(t, rule)
	assert.Equal(t, "/items/{id}", rule.Pattern)
}

func TestDecide_DefaultReturnsNilRule(t *testing.T) {
	p := policy.Default()
	req, rule := p.Decide(http.MethodDelete, "/v1/products/abc")
	assert.Equal(t, policy.Authenticated, req)
	assert.Nil(t, rule)
}

func TestDecide_AnyMethodAndTrailingWildcard(t *testing.T) {
	p := policy.MustNew([]policy.Rule{
		{Method: policy.AnyMethod, Pattern: "/public/**", Requirement: policy.Public},
	})

	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodDelete, "PURGE"} {
		got, _ := p.Decide(m, "/public/a/b/c")
		assert.Equal(t, policy.Public, got, m)
	}
	got, _ := p.Decide(http.MethodGet, "/public")
	assert.Equal(t, policy.Public, got, "** también coincide con cero segmentos")

	got, _ = p.Decide(http.MethodGet, "/publicity")
	assert.Equal(t, policy.Authenticated, got)
}

func TestDecide_MethodIsCaseNormalizedInRules(t *testing.T) {
	p := policy.MustNew([]policy.Rule{
		{Method: "get", Pattern: "/a", Requirement: policy.Public},
	})
	got, _ := p.Decide(http.MethodGet, "/a")
	assert.Equal(t, policy.Public, got)
}

func TestDecideRequest_UsesRawPath(t *testing.T) {
	p := policy.Default()

	// %2F no separa segmentos: el router ve un único segmento y la política también.
	r := httptest.NewRequest(http.MethodGet, "/v1/products/a%2Fb", nil)
	got, _ := p.DecideRequest(r)
	assert.Equal(t, policy.Public, got)

	// sin RawPath se usa Path
	r = httptest.NewRequest(http.MethodGet, "/v1/products/my", nil)
	got, _ = p.DecideRequest(r)
	assert.Equal(t, policy.Authenticated, got)
}

func TestNew_RejectsBadRules(t *testing.T) {
	_, err := policy.New([]policy.Rule{{Method: "", Pattern: "/a"}})
	require.Error(t, err)

	_, err = policy.New([]policy.Rule{{Method: http.MethodGet, Pattern: "a/b"}})
	require.Error(t, err)

	_, err = policy.New([]policy.Rule{{Method: http.MethodGet, Pattern: "/a/**/b"}})
	require.Error(t, err)

	assert.Panics(t, func() {
		policy.MustNew([]policy.Rule{{Method: "", Pattern: "/a"}})
	})
}

func TestRules_ReturnsCopy(t *testing.T) {
	p := policy.Default()
	rules := p.Rules()
	require.NotEmpty(t, rules)
	rules[0].Requirement = policy.Authenticated

	got, _ := p.Decide(http.MethodOptions, "/x")
	assert.Equal(t, policy.Public, got)
}

func TestRequirement_String(t *testing.T) {
	assert.Equal(t, "public", policy.Public.String())
	assert.Equal(t, "authenticated", policy.Authenticated.String())

	var zero policy.Requirement
	assert.Equal(t, policy.Authenticated, zero)
}

// Cualquier path fuera de los prefijos conocidos requiere autenticación,
// sea cual sea el método distinto de OPTIONS.
func TestDecide_FailClosedProperty(t *testing.T) {
	p := policy.Default()
	methods := []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodHead,
	}

	rapid.Check(t, func(t *rapid.T) {
		method := rapid.SampledFrom(methods).Draw(t, "method")
		segs := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9_-]{0,12}`), 1, 6).Draw(t, "segs")
		path := "/x-" + strings.Join(segs, "/")

		got, rule := p.Decide(method, path)
		if got != policy.Authenticated || rule != nil {
			t.Fatalf("%s %s: got %s (rule %v), want default authenticated", method, path, got, rule)
		}
	})
}

// OPTIONS es público en cualquier path.
func TestDecide_PreflightAlwaysPublic(t *testing.T) {
	p := policy.Default()
	rapid.Check(t, func(t *rapid.T) {
		path := "/" + rapid.StringMatching(`[a-zA-Z0-9/{}._~-]{0,40}`).Draw(t, "path")
		if got, _ := p.Decide(http.MethodOptions, path); got != policy.Public {
			t.Fatalf("OPTIONS %s: got %s", path, got)
		}
	})
}
