package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/http/dto"
	dtop "github.com/umdev/infoeste/internal/http/dto/product"
	"github.com/umdev/infoeste/internal/http/errors"
	"github.com/umdev/infoeste/internal/observability/logger"
	"github.com/umdev/infoeste/internal/validation"
)

type productService struct {
	stores   repository.StoreRepository
	products repository.ProductRepository
	maxImage int64
}

// NewProductService crea el service de productos.
func NewProductService(d Deps) ProductService {
	return &productService{stores: d.Stores, products: d.Products, maxImage: d.MaxImageBytes}
}

const componentProduct = "product"

var errNotOwned = errors.ErrNotFound.WithMessage("Product not found or doesn't belong to store")

func (s *productService) log(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentProduct),
		logger.Op(op),
	)
}

func (s *productService) Create(ctx context.Context, owner string, in dtop.CreateInput, img *dtop.Image) (*dtop.CreateResponse, error) {
	log := s.log(ctx, "Create")

	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if err := validateImage(img, s.maxImage); err != nil {
		return nil, err
	}

	st, err := s.owner(ctx, owner)
	if err != nil {
		return nil, err
	}

	p := &repository.Product{
		StoreID:     st.ID,
		StoreName:   st.Name,
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Stock:       *in.Stock,
		Category:    strings.TrimSpace(in.Category),
		ImageBase64: encodeImage(img.Data),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("product created",
		logger.StoreID(st.ID.String()),
		logger.ProductID(p.ID.String()),
		logger.Int("image_bytes", len(img.Data)),
	)
	return toCreateResponse(p), nil
}

func (s *productService) My(ctx context.Context, owner string) ([]dtop.MyItem, error) {
	st, err := s.owner(ctx, owner)
	if err != nil {
		return nil, err
	}

	rows, err := s.products.ListByStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dtop.MyItem, 0, len(rows))
	for _, p := range rows {
		out = append(out, dtop.MyItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Stock:    p.Stock,
			ImageURL: imageURL(p.ImageBase64),
		})
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, owner string, id uuid.UUID, in dtop.UpdateRequest) (*dtop.CreateResponse, error) {
	log := s.log(ctx, "Update")

	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	p, err := s.owned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Price = *in.Price
	p.Stock = *in.Stock
	p.Category = strings.TrimSpace(in.Category)

	if err := s.products.Update(ctx, p); err != nil {
		return nil, s.ownership(err)
	}

	log.Info("product updated", logger.ProductID(id.String()))
	return toCreateResponse(p), nil
}

func (s *productService) UpdateImage(ctx context.Context, owner string, id uuid.UUID, img *dtop.Image) (*dtop.ImageResponse, error) {
	log := s.log(ctx, "UpdateImage")

	if err := validateImage(img, s.maxImage); err != nil {
		return nil, err
	}

	p, err := s.owned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	p.ImageBase64 = encodeImage(img.Data)
	if err := s.products.Update(ctx, p); err != nil {
		return nil, s.ownership(err)
	}

	log.Info("product image updated", logger.ProductID(id.String()), logger.Int("image_bytes", len(img.Data)))
	return &dtop.ImageResponse{ID: p.ID, ImageURL: imageURL(p.ImageBase64)}, nil
}

func (s *productService) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	st, err := s.owner(ctx, owner)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id, st.ID); err != nil {
		return s.ownership(err)
	}
	s.log(ctx, "Delete").Info("product deleted", logger.ProductID(id.String()))
	return nil
}

func (s *productService) List(ctx context.Context, page repository.Page, q dtop.ListQuery) (*dto.Page[dtop.PublicItem], error) {
	return s.list(ctx, filter(page, q, nil))
}

func (s *productService) ListByStore(ctx context.Context, storeID uuid.UUID, page repository.Page, q dtop.ListQuery) (*dto.Page[dtop.PublicItem], error) {
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.ErrNotFound.WithMessagef("Store not found with id: %s", storeID).WithCause(err)
		}
		return nil, err
	}
	return s.list(ctx, filter(page, q, &storeID))
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dtop.DetailResponse, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.ErrNotFound.WithMessagef("Product not found with id: %s", id).WithCause(err)
		}
		return nil, err
	}
	return &dtop.DetailResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    imageURL(p.ImageBase64),
		Store:       dtop.StoreBrief{ID: p.StoreID, Name: p.StoreName},
	}, nil
}

// =================================================================================
// HELPERS
// =================================================================================

func (s *productService) list(ctx context.Context, f repository.ProductFilter) (*dto.Page[dtop.PublicItem], error) {
	rows, total, err := s.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dtop.PublicItem, 0, len(rows))
	for _, p := range rows {
		items = append(items, dtop.PublicItem{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			Category:  p.Category,
			StoreName: p.StoreName,
			ImageURL:  imageURL(p.ImageBase64),
		})
	}
	return &dto.Page[dtop.PublicItem]{
		Meta: dto.PageMeta{Page: f.Number, Limit: f.Limit, Total: total},
		Data: items,
	}, nil
}

func filter(page repository.Page, q dtop.ListQuery, storeID *uuid.UUID) repository.ProductFilter {
	return repository.ProductFilter{
		Page:     page,
		StoreID:  storeID,
		Query:    strings.TrimSpace(q.Query),
		Category: strings.TrimSpace(q.Category),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
}

// owner resuelve la tienda del principal. Un token válido de una tienda
// borrada da 404, no 401.
func (s *productService) owner(ctx context.Context, email string) (*repository.Store, error) {
	st, err := s.stores.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.ErrNotFound.WithMessagef("Store not found with email: %s", email).WithCause(err)
		}
		return nil, err
	}
	return st, nil
}

func (s *productService) owned(ctx context.Context, email string, id uuid.UUID) (*repository.Product, error) {
	st, err := s.owner(ctx, email)
	if err != nil {
		return nil, err
	}
	p, err := s.products.GetOwned(ctx, id, st.ID)
	if err != nil {
		return nil, s.ownership(err)
	}
	return p, nil
}

// ownership no distingue "no existe" de "es de otra tienda".
func (s *productService) ownership(err error) error {
	if repository.IsNotFound(err) {
		return errNotOwned.WithCause(err)
	}
	return err
}

func toCreateResponse(p *repository.Product) *dtop.CreateResponse {
	return &dtop.CreateResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    imageURL(p.ImageBase64),
		CreatedAt:   p.CreatedAt,
	}
}
