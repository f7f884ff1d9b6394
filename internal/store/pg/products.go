package pg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umdev/infoeste/internal/domain/repository"
)

type productRepo struct{ pool *pgxpool.Pool }

const productSelect = `SELECT p.id, p.store_id, s.name, p.name, p.description, p.price::float8, p.stock,
       p.category, p.image_base64, p.created_at
  FROM products p JOIN stores s ON s.id = p.store_id`

func scanProduct(row interface{ Scan(...any) error }) (*repository.Product, error) {
	var p repository.Product
	if err := row.Scan(&p.ID, &p.StoreID, &p.StoreName, &p.Name, &p.Description, &p.Price,
		&p.Stock, &p.Category, &p.ImageBase64, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *repository.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	const q = `INSERT INTO products (id, store_id, name, description, price, stock, category, image_base64, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.pool.Exec(ctx, q, p.ID, p.StoreID, p.Name, p.Description, p.Price, p.Stock,
		p.Category, p.ImageBase64, p.CreatedAt)
	return mapErr(err)
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	return p, mapErr(err)
}

func (r *productRepo) GetOwned(ctx context.Context, id, storeID uuid.UUID) (*repository.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1 AND p.store_id = $2`, id, storeID))
	return p, mapErr(err)
}

func (r *productRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]repository.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+` WHERE p.store_id = $1 ORDER BY p.created_at, p.id`, storeID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []repository.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// buildWhere arma el WHERE de List con placeholders posicionales.
func buildWhere(f repository.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.StoreID != nil {
		add("p.store_id = $%d", *f.StoreID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add("lower(p.name) LIKE '%%' || lower($%d) || '%%'", q)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		add("lower(p.category) = lower($%d)", c)
	}
	if f.MinPrice != nil {
		add("p.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("p.price <= $%d", *f.MaxPrice)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *productRepo) List(ctx context.Context, f repository.ProductFilter) ([]repository.Product, int64, error) {
	where, args := buildWhere(f)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	n := len(args)
	q := productSelect + where + fmt.Sprintf(` ORDER BY p.created_at, p.id LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := r.pool.Query(ctx, q, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := make([]repository.Product, 0, f.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, p *repository.Product) error {
	const q = `UPDATE products
   SET name = $3, description = $4, price = $5, stock = $6, category = $7, image_base64 = $8
 WHERE id = $1 AND store_id = $2`
	tag, err := r.pool.Exec(ctx, q, p.ID, p.StoreID, p.Name, p.Description, p.Price, p.Stock,
		p.Category, p.ImageBase64)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id, storeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
