package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
)

// FranchiseRepository defines persistence access for franchises and stores.
type FranchiseRepository interface {
	Create(ctx context.Context, franchise *domain.Franchise) error
	GetByID(ctx context.Context, id string) (*domain.Franchise, error)
	List(ctx context.Context) ([]domain.Franchise, error)
	ListByAdmin(ctx context.Context, userID string) ([]domain.Franchise, error)
	Delete(ctx context.Context, id string) error
	CreateStore(ctx context.Context, store *domain.Store) error
	DeleteStore(ctx context.Context, franchiseID, storeID string) error
}

type franchiseRepository struct {
	pool *pgxpool.Pool
}

// NewFranchiseRepository returns a Postgres-backed implementation.
func NewFranchiseRepository(pool *pgxpool.Pool) FranchiseRepository {
	return &franchiseRepository{pool: pool}
}

func (r *franchiseRepository) Create(ctx context.Context, franchise *domain.Franchise) error {
	const query = `
        INSERT INTO franchises (id, name)
        VALUES ($1, $2)
        RETURNING created_at`

	if err := r.pool.QueryRow(ctx, query, franchise.ID, franchise.Name).Scan(&franchise.CreatedAt); err != nil {
		return err
	}

	const adminQuery = `
        INSERT INTO franchise_admins (franchise_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING`

	for _, admin := range franchise.Admins {
		if _, err := r.pool.Exec(ctx, adminQuery, franchise.ID, admin.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *franchiseRepository) GetByID(ctx context.Context, id string) (*domain.Franchise, error) {
	const query = `SELECT id, name, created_at FROM franchises WHERE id=$1`

	var franchise domain.Franchise
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&franchise.ID,
		&franchise.Name,
		&franchise.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.hydrate(ctx, &franchise); err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (r *franchiseRepository) List(ctx context.Context) ([]domain.Franchise, error) {
	const query = `SELECT id, name, created_at FROM franchises ORDER BY created_at`

	return r.queryFranchises(ctx, query)
}

func (r *franchiseRepository) ListByAdmin(ctx context.Context, userID string) ([]domain.Franchise, error) {
	const query = `
        SELECT f.id, f.name, f.created_at FROM franchises f
        JOIN franchise_admins fa ON fa.franchise_id = f.id
        WHERE fa.user_id = $1 ORDER BY f.created_at`

	return r.queryFranchises(ctx, query, userID)
}

func (r *franchiseRepository) Delete(ctx context.Context, id string) error {
	// Stores and admin links cascade via the schema's FK constraints.
	const query = `DELETE FROM franchises WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *franchiseRepository) CreateStore(ctx context.Context, store *domain.Store) error {
	const query = `
        INSERT INTO stores (id, franchise_id, name)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query, store.ID, store.FranchiseID, store.Name).Scan(&store.CreatedAt)
}

func (r *franchiseRepository) DeleteStore(ctx context.Context, franchiseID, storeID string) error {
	const query = `DELETE FROM stores WHERE id=$1 AND franchise_id=$2`

	cmd, err := r.pool.Exec(ctx, query, storeID, franchiseID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *franchiseRepository) queryFranchises(ctx context.Context, query string, args ...any) ([]domain.Franchise, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	franchises := []domain.Franchise{}
	for rows.Next() {
		var franchise domain.Franchise
		if err := rows.Scan(&franchise.ID, &franchise.Name, &franchise.CreatedAt); err != nil {
			return nil, err
		}
		franchises = append(franchises, franchise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range franchises {
		if err := r.hydrate(ctx, &franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

func (r *franchiseRepository) hydrate(ctx context.Context, franchise *domain.Franchise) error {
	const adminQuery = `
        SELECT u.id, u.name, u.email FROM users u
        JOIN franchise_admins fa ON fa.user_id = u.id
        WHERE fa.franchise_id = $1 ORDER BY u.name`

	rows, err := r.pool.Query(ctx, adminQuery, franchise.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	franchise.Admins = []domain.User{}
	for rows.Next() {
		var admin domain.User
		if err := rows.Scan(&admin.ID, &admin.Name, &admin.Email); err != nil {
			return err
		}
		franchise.Admins = append(franchise.Admins, admin)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const storeQuery = `
        SELECT id, franchise_id, name, created_at FROM stores
        WHERE franchise_id=$1 ORDER BY created_at`

	storeRows, err := r.pool.Query(ctx, storeQuery, franchise.ID)
	if err != nil {
		return err
	}
	defer storeRows.Close()

	franchise.Stores = []domain.Store{}
	for storeRows.Next() {
		var store domain.Store
		if err := storeRows.Scan(&store.ID, &store.FranchiseID, &store.Name, &store.CreatedAt); err != nil {
			return err
		}
		franchise.Stores = append(franchise.Stores, store)
	}
	return storeRows.Err()
}
