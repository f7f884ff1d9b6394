// Package memory implementa los repositorios en memoria. Se usa en desarrollo
// (storage.driver=memory) y en los tests de servicios y del router.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/umdev/infoeste/internal/domain/repository"
)

// Store agrupa tiendas y productos bajo un mismo lock, así la consulta de
// productos puede resolver el nombre de la tienda.
type Store struct {
	mu       sync.RWMutex
	stores   map[uuid.UUID]repository.Store
	byEmail  map[string]uuid.UUID
	products map[uuid.UUID]repository.Product
	now      func() time.Time
}

// New crea un almacenamiento vacío.
func New() *Store {
	return &Store{
		stores:   make(map[uuid.UUID]repository.Store),
		byEmail:  make(map[string]uuid.UUID),
		products: make(map[uuid.UUID]repository.Product),
		now:      time.Now,
	}
}

// Stores devuelve el repositorio de tiendas.
func (s *Store) Stores() repository.StoreRepository { return storeRepo{s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

func emailKey(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func window[T any](items []T, p repository.Page) []T {
	off := p.Offset()
	if off >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && off+p.Limit < end {
		end = off + p.Limit
	}
	return items[off:end]
}

// ---- stores ----

type storeRepo struct{ s *Store }

func (r storeRepo) Create(_ context.Context, st *repository.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := emailKey(st.Email)
	if _, dup := r.s.byEmail[key]; dup {
		return repository.ErrConflict
	}
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = r.s.now().UTC()
	}
	r.s.stores[st.ID] = *st
	r.s.byEmail[key] = st.ID
	return nil
}

func (r storeRepo) GetByEmail(_ context.Context, email string) (*repository.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[emailKey(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	st := r.s.stores[id]
	return &st, nil
}

func (r storeRepo) GetByID(_ context.Context, id uuid.UUID) (*repository.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &st, nil
}

func (r storeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.byEmail[emailKey(email)]
	return ok, nil
}

func (r storeRepo) List(_ context.Context, f repository.StoreFilter) ([]repository.Store, int64, error) {
	r.s.mu.RLock()
	q := strings.ToLower(strings.TrimSpace(f.Query))
	matched := make([]repository.Store, 0, len(r.s.stores))
	for _, st := range r.s.stores {
		if q == "" || strings.Contains(strings.ToLower(st.Name), q) || strings.Contains(strings.ToLower(st.City), q) {
			matched = append(matched, st)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return window(matched, f.Page), int64(len(matched)), nil
}

// ---- products ----

type productRepo struct{ s *Store }

// withStore completa StoreName. Requiere el lock tomado.
func (r productRepo) withStore(p repository.Product) repository.Product {
	if st, ok := r.s.stores[p.StoreID]; ok {
		p.StoreName = st.Name
	}
	return p
}

func (r productRepo) Create(_ context.Context, p *repository.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stores[p.StoreID]; !ok {
		return repository.ErrNotFound
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now().UTC()
	}
	*p = r.withStore(*p)
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id uuid.UUID) (*repository.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.withStore(p)
	return &p, nil
}

func (r productRepo) GetOwned(ctx context.Context, id, storeID uuid.UUID) (*repository.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.StoreID != storeID {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r productRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]repository.Product, error) {
	all, _, err := r.List(ctx, repository.ProductFilter{StoreID: &storeID})
	return all, err
}

func (r productRepo) matches(p repository.Product, f repository.ProductFilter) bool {
	if f.StoreID != nil && p.StoreID != *f.StoreID {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
		return false
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(p.Category, c) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// List con Limit == 0 devuelve todos los resultados.
func (r productRepo) List(_ context.Context, f repository.ProductFilter) ([]repository.Product, int64, error) {
	r.s.mu.RLock()
	matched := make([]repository.Product, 0)
	for _, p := range r.s.products {
		if r.matches(p, f) {
			matched = append(matched, r.withStore(p))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return window(matched, f.Page), int64(len(matched)), nil
}

func (r productRepo) Update(_ context.Context, p *repository.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.StoreID != p.StoreID {
		return repository.ErrNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.Stock = p.Stock
	cur.Category = p.Category
	cur.ImageBase64 = p.ImageBase64
	r.s.products[p.ID] = cur
	return nil
}

func (r productRepo) Delete(_ context.Context, id, storeID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[id]
	if !ok || cur.StoreID != storeID {
		return repository.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}
