package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umdev/infoeste/internal/domain/repository"
)

func seedStore(t *testing.T, s *Store, name, email, city string) *repository.Store {
	t.Helper()
	st := &repository.Store{Name: name, Email: email, City: city, PasswordHash: "x"}
	require.NoError(t, s.Stores().Create(context.Background(), st))
	return st
}

func TestStores_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := New()

	st := seedStore(t, s, "Loja A", "A@B.com", "Presidente Prudente")
	assert.NotEqual(t, uuid.Nil, st.ID)
	assert.False(t, st.CreatedAt.IsZero())

	got, err := s.Stores().GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)

	ok, err := s.Stores().ExistsByEmail(ctx, " a@B.COM ")
	require.NoError(t, err)
	assert.True(t, ok)

	err = s.Stores().Create(ctx, &repository.Store{Name: "dup", Email: "a@b.com", City: "x"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = s.Stores().GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStores_ListSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	s.now = func() time.Time { i++; return base.Add(time.Duration(i) * time.Minute) }

	seedStore(t, s, "Padaria", "p@x.com", "Prudente")
	seedStore(t, s, "Mercado", "m@x.com", "Assis")
	seedStore(t, s, "Açougue", "a@x.com", "Prudente")

	items, total, err := s.Stores().List(ctx, repository.StoreFilter{Page: repository.Page{Number: 1, Limit: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Padaria", items[0].Name)

	items, _, err = s.Stores().List(ctx, repository.StoreFilter{Page: repository.Page{Number: 2, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Açougue", items[0].Name)

	items, total, err = s.Stores().List(ctx, repository.StoreFilter{Page: repository.Page{Number: 1, Limit: 10}, Query: "prud"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)

	items, _, err = s.Stores().List(ctx, repository.StoreFilter{Page: repository.Page{Number: 5, Limit: 10}})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProducts_OwnershipAndFilters(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := seedStore(t, s, "Loja A", "a@x.com", "X")
	b := seedStore(t, s, "Loja B", "b@x.com", "Y")

	mk := func(store uuid.UUID, name, cat string, price float64) *repository.Product {
		p := &repository.Product{StoreID: store, Name: name, Category: cat, Price: price, Stock: 1, ImageBase64: "AA=="}
		require.NoError(t, s.Products().Create(ctx, p))
		return p
	}
	p1 := mk(a.ID, "Notebook Gamer", "Eletrônicos", 2999.99)
	mk(a.ID, "Mouse Gaming", "Periféricos", 149.90)
	mk(b.ID, "Teclado", "periféricos", 199.00)

	got, err := s.Products().GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loja A", got.StoreName)

	_, err = s.Products().GetOwned(ctx, p1.ID, b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mine, err := s.Products().ListByStore(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	minP := 150.0
	items, total, err := s.Products().List(ctx, repository.ProductFilter{
		Page:     repository.Page{Number: 1, Limit: 10},
		Category: "PERIFÉRICOS",
		MinPrice: &minP,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Teclado", items[0].Name)
	assert.Equal(t, "Loja B", items[0].StoreName)

	items, _, err = s.Products().List(ctx, repository.ProductFilter{Page: repository.Page{Number: 1, Limit: 10}, Query: "gam"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Update y Delete respetan la tienda dueña
	upd := *p1
	upd.StoreID = b.ID
	upd.Name = "hack"
	assert.ErrorIs(t, s.Products().Update(ctx, &upd), repository.ErrNotFound)
	assert.ErrorIs(t, s.Products().Delete(ctx, p1.ID, b.ID), repository.ErrNotFound)

	upd.StoreID = a.ID
	upd.Name = "Notebook"
	require.NoError(t, s.Products().Update(ctx, &upd))
	got, err = s.Products().GetByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notebook", got.Name)

	require.NoError(t, s.Products().Delete(ctx, p1.ID, a.ID))
	_, err = s.Products().GetByID(ctx, p1.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProducts_CreateRequiresStore(t *testing.T) {
	s := New()
	err := s.Products().Create(context.Background(), &repository.Product{StoreID: uuid.New(), Name: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
