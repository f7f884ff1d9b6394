package pg

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umdev/infoeste/internal/domain/repository"
)

type storeRepo struct{ pool *pgxpool.Pool }

const storeColumns = `id, name, email, password_hash, description, address, city, phone, created_at`

func scanStore(row interface{ Scan(...any) error }) (*repository.Store, error) {
	var s repository.Store
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Description,
		&s.Address, &s.City, &s.Phone, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storeRepo) Create(ctx context.Context, s *repository.Store) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	const q = `INSERT INTO stores (` + storeColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err := r.pool.Exec(ctx, q, s.ID, s.Name, s.Email, s.PasswordHash, s.Description,
		s.Address, s.City, s.Phone, s.CreatedAt)
	return mapErr(err)
}

func (r *storeRepo) GetByEmail(ctx context.Context, email string) (*repository.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE lower(email) = lower($1)`
	s, err := scanStore(r.pool.QueryRow(ctx, q, strings.TrimSpace(email)))
	return s, mapErr(err)
}

func (r *storeRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Store, error) {
	const q = `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	s, err := scanStore(r.pool.QueryRow(ctx, q, id))
	return s, mapErr(err)
}

func (r *storeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stores WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email)).Scan(&ok)
	return ok, mapErr(err)
}

func (r *storeRepo) List(ctx context.Context, f repository.StoreFilter) ([]repository.Store, int64, error) {
	const where = ` WHERE ($1 = '' OR lower(name) LIKE '%' || lower($1) || '%' OR lower(city) LIKE '%' || lower($1) || '%')`
	q := strings.TrimSpace(f.Query)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM stores`+where, q).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+storeColumns+` FROM stores`+where+` ORDER BY created_at, id LIMIT $2 OFFSET $3`,
		q, f.Limit, f.Offset())
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	out := make([]repository.Store, 0, f.Limit)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	return out, total, rows.Err()
}
