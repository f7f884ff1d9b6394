// Package cached decora repositorios con un cache de lookups (read-through).
package cached

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/umdev/infoeste/internal/cache"
	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/observability/logger"
)

const (
	keyByEmail = "store:email:"
	keyByID    = "store:id:"
)

// Stores cachea GetByEmail y GetByID, que se resuelven en cada request
// autenticado (el subject del token es el e-mail de la tienda).
// Las tiendas no se editan ni se borran, así que no hay invalidación.
type Stores struct {
	repository.StoreRepository
	c   cache.Client
	ttl time.Duration
}

// NewStores devuelve next sin decorar si c es nil.
func NewStores(next repository.StoreRepository, c cache.Client, ttl time.Duration) repository.StoreRepository {
	if c == nil {
		return next
	}
	return &Stores{StoreRepository: next, c: c, ttl: ttl}
}

func (s *Stores) GetByEmail(ctx context.Context, email string) (*repository.Store, error) {
	key := keyByEmail + strings.ToLower(strings.TrimSpace(email))
	if st, ok := s.get(ctx, key); ok {
		return st, nil
	}
	st, err := s.StoreRepository.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.put(ctx, st)
	return st, nil
}

func (s *Stores) GetByID(ctx context.Context, id uuid.UUID) (*repository.Store, error) {
	if st, ok := s.get(ctx, keyByID+id.String()); ok {
		return st, nil
	}
	st, err := s.StoreRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.put(ctx, st)
	return st, nil
}

func (s *Stores) get(ctx context.Context, key string) (*repository.Store, bool) {
	b, err := s.c.Get(ctx, key)
	if err != nil {
		if !cache.IsNotFound(err) {
			logger.From(ctx).Debug("cache get failed", logger.Component("cache"), logger.Err(err))
		}
		return nil, false
	}
	var st repository.Store
	if err := json.Unmarshal(b, &st); err != nil {
		_ = s.c.Delete(ctx, key)
		return nil, false
	}
	return &st, true
}

func (s *Stores) put(ctx context.Context, st *repository.Store) {
	b, err := json.Marshal(st)
	if err != nil {
		return
	}
	for _, key := range []string{keyByEmail + strings.ToLower(st.Email), keyByID + st.ID.String()} {
		if err := s.c.Set(ctx, key, b, s.ttl); err != nil {
			logger.From(ctx).Debug("cache set failed", logger.Component("cache"), logger.Err(err))
			return
		}
	}
}
