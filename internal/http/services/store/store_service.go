package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/http/dto"
	dtos "github.com/umdev/infoeste/internal/http/dto/store"
	"github.com/umdev/infoeste/internal/http/errors"
	"github.com/umdev/infoeste/internal/metrics"
	"github.com/umdev/infoeste/internal/observability/logger"
	"github.com/umdev/infoeste/internal/security/password"
	"github.com/umdev/infoeste/internal/validation"
)

type storeService struct {
	stores repository.StoreRepository
	issuer TokenIssuer
	params password.Params
}

// NewStoreService crea el service de tiendas.
func NewStoreService(d Deps) StoreService {
	params := password.Default
	if d.Params != nil {
		params = *d.Params
	}
	return &storeService{stores: d.Stores, issuer: d.Issuer, params: params}
}

const componentStore = "store"

// normalizeEmail: el e-mail es el subject del token; se compara sin mayúsculas.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func alreadyExists(email string) *errors.AppError {
	return errors.ErrConflict.WithMessagef("Store already exists with email: %s", email)
}

func (s *storeService) Register(ctx context.Context, in dtos.RegisterRequest) (*dtos.RegisterResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentStore),
		logger.Op("Register"),
	)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.City = strings.TrimSpace(in.City)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	exists, err := s.stores.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, alreadyExists(in.Email)
	}

	hash, err := password.Hash(s.params, in.Password)
	if err != nil {
		return nil, err
	}

	st := &repository.Store{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Description:  in.Description,
		Address:      in.Address,
		City:         in.City,
		Phone:        in.Phone,
	}
	if err := s.stores.Create(ctx, st); err != nil {
		// carrera entre ExistsByEmail y el insert
		if repository.IsConflict(err) {
			return nil, alreadyExists(in.Email).WithCause(err)
		}
		return nil, err
	}

	log.Info("store registered", logger.StoreID(st.ID.String()))
	return &dtos.RegisterResponse{
		ID:        st.ID,
		Name:      st.Name,
		Email:     st.Email,
		City:      st.City,
		CreatedAt: st.CreatedAt,
	}, nil
}

func (s *storeService) Login(ctx context.Context, in dtos.LoginRequest) (*dtos.LoginResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentStore),
		logger.Op("Login"),
	)

	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	st, err := s.stores.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("login rejected", logger.Reason("unknown_email"))
			return nil, errors.ErrBadCredentials
		}
		return nil, err
	}
	if !password.Verify(in.Password, st.PasswordHash) {
		log.Debug("login rejected", logger.Reason("bad_password"), logger.StoreID(st.ID.String()))
		return nil, errors.ErrBadCredentials
	}

	tk, err := s.issuer.Issue(st.Email)
	if err != nil {
		return nil, err
	}
	metrics.TokensIssued.Inc()

	log.Info("store logged in", logger.StoreID(st.ID.String()))
	return &dtos.LoginResponse{
		Token: tk.Raw,
		Store: dtos.StoreSummary{ID: st.ID, Name: st.Name, Email: st.Email},
	}, nil
}

func (s *storeService) Profile(ctx context.Context, email string) (*dtos.ProfileResponse, error) {
	st, err := s.byEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &dtos.ProfileResponse{
		ID:          st.ID,
		Name:        st.Name,
		Email:       st.Email,
		Description: st.Description,
		City:        st.City,
		CreatedAt:   st.CreatedAt,
	}, nil
}

func (s *storeService) List(ctx context.Context, page repository.Page, query string) (*dto.Page[dtos.PublicItem], error) {
	rows, total, err := s.stores.List(ctx, repository.StoreFilter{Page: page, Query: strings.TrimSpace(query)})
	if err != nil {
		return nil, err
	}

	items := make([]dtos.PublicItem, 0, len(rows))
	for _, st := range rows {
		items = append(items, dtos.PublicItem{
			ID:          st.ID,
			Name:        st.Name,
			City:        st.City,
			Description: st.Description,
		})
	}
	return &dto.Page[dtos.PublicItem]{
		Meta: dto.PageMeta{Page: page.Number, Limit: page.Limit, Total: total},
		Data: items,
	}, nil
}

func (s *storeService) Get(ctx context.Context, id uuid.UUID) (*dtos.DetailResponse, error) {
	st, err := s.stores.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.ErrNotFound.WithMessagef("Store not found with id: %s", id).WithCause(err)
		}
		return nil, err
	}
	return &dtos.DetailResponse{
		ID:          st.ID,
		Name:        st.Name,
		City:        st.City,
		Address:     st.Address,
		Phone:       st.Phone,
		Description: st.Description,
	}, nil
}

// byEmail resuelve la tienda del principal.
func (s *storeService) byEmail(ctx context.Context, email string) (*repository.Store, error) {
	st, err := s.stores.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.ErrNotFound.WithMessagef("Store not found with email: %s", email).WithCause(err)
		}
		return nil, err
	}
	return st, nil
}
