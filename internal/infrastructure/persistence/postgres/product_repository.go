package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/growthfolio/next-comic-store/internal/domain/product"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	const stmt = `
		INSERT INTO products (id, title, image_url, price, description, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING;
	`
	_, err := r.pool.Exec(ctx, stmt, p.ID, p.Title, p.ImageURL, p.Price, p.Description, p.Type, p.CreatedAt)
	if err != nil {
		return storeErr("insert product", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
		SELECT id, title, image_url, price, description, type, created_at
		FROM products
		WHERE id = $1;
	`
	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.ImageURL,
		&p.Price,
		&p.Description,
		&p.Type,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("find product", err)
	}
	return &p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	const query = `
		SELECT id, title, image_url, price, description, type, created_at
		FROM products
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.ImageURL,
			&p.Price,
			&p.Description,
			&p.Type,
			&p.CreatedAt,
		); err != nil {
			return nil, storeErr("scan product", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list products", err)
	}
	return products, nil
}
