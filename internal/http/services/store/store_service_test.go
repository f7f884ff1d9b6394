package store

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umdev/infoeste/internal/domain/repository"
	dtos "github.com/umdev/infoeste/internal/http/dto/store"
	"github.com/umdev/infoeste/internal/http/errors"
	jwtx "github.com/umdev/infoeste/internal/jwt"
	"github.com/umdev/infoeste/internal/security/password"
	"github.com/umdev/infoeste/internal/store/memory"
	"github.com/umdev/infoeste/internal/validation"
)

// fastParams mantiene los tests rápidos; el formato PHC es el mismo.
var fastParams = password.Params{Memory: 1024, Time: 1, Parallelism: 1, KeyLen: 16}

func newService(t *testing.T) (StoreService, *jwtx.Issuer, repository.StoreRepository) {
	t.Helper()
	iss, err := jwtx.NewIssuer("test", []byte(strings.Repeat("s", 32)), time.Hour)
	require.NoError(t, err)
	repo := memory.New().Stores()
	return NewServices(Deps{Stores: repo, Issuer: iss, Params: &fastParams}).Store, iss, repo
}

func validRegister() dtos.RegisterRequest {
	return dtos.RegisterRequest{
		Name:     "Loja Centro",
		Email:    "Loja@Example.com",
		Password: "secret1",
		City:     "Presidente Prudente",
	}
}

func TestRegister_NormalizesAndHashes(t *testing.T) {
	svc, _, repo := newService(t)
	ctx := context.Background()

	out, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "loja@example.com", out.Email)
	assert.NotEqual(t, uuid.Nil, out.ID)

	st, err := repo.GetByEmail(ctx, "loja@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", st.PasswordHash)
	assert.True(t, password.Verify("secret1", st.PasswordHash))
}

func TestRegister_ValidationListsEveryField(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Register(context.Background(), dtos.RegisterRequest{Email: "nope", Password: "123"})
	var verr *validation.RequestValidationError
	require.True(t, stderrors.As(err, &verr))

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Email must be valid", fields["email"])
	assert.Equal(t, "Password must be at least 6 characters", fields["password"])
	assert.Equal(t, "City is required", fields["city"])
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	in := validRegister()
	in.Email = "LOJA@example.com"
	_, err = svc.Register(ctx, in)
	ae := errors.Translate(err)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, "Store already exists with email: loja@example.com", ae.Message)
}

func TestLogin_IssuesTokenForLowercaseEmail(t *testing.T) {
	svc, iss, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	out, err := svc.Login(ctx, dtos.LoginRequest{Email: " LOJA@example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Loja Centro", out.Store.Name)

	p, err := iss.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "loja@example.com", p.Subject)
}

func TestLogin_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, dtos.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	_, errBad := svc.Login(ctx, dtos.LoginRequest{Email: "loja@example.com", Password: "wrong-pass"})

	for _, err := range []error{errUnknown, errBad} {
		ae := errors.Translate(err)
		assert.Equal(t, http.StatusUnauthorized, ae.Status)
		assert.Equal(t, "Invalid email or password", ae.Message)
	}
}

func TestProfileAndGet_NotFound(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Profile(ctx, "gone@example.com")
	assert.Equal(t, "Store not found with email: gone@example.com", errors.Translate(err).Message)

	id := uuid.New()
	_, err = svc.Get(ctx, id)
	ae := errors.Translate(err)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, "Store not found with id: "+id.String(), ae.Message)
}

func TestList_PagesPublicItems(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	for _, e := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		in := validRegister()
		in.Email = e
		_, err := svc.Register(ctx, in)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, repository.Page{Number: 2, Limit: 2}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Meta.Total)
	assert.Len(t, page.Data, 1)
}
