package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
)

// MenuRepository defines persistence access for the menu. The menu is
// append-only: Add never replaces or dedupes existing entries.
type MenuRepository interface {
	Add(ctx context.Context, item *domain.MenuItem) error
	List(ctx context.Context) ([]domain.MenuItem, error)
}

type menuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a Postgres-backed implementation.
func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

func (r *menuRepository) Add(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (id, title, description, image, price)
        VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.Image,
		item.Price,
	)
	return err
}

func (r *menuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	const query = `
        SELECT id, title, description, image, price
        FROM menu_items ORDER BY added_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
