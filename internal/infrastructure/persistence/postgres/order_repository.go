package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create writes the order row and all item rows in one transaction. A
// failure partway rolls everything back; an order never exists without its
// items.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin tx", err)
	}
	defer tx.Rollback(ctx)

	const orderStmt = `
		INSERT INTO orders (id, user_id, customer_name, total_price, status, custom_image_url, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, orderStmt,
		o.ID,
		o.UserID,
		o.CustomerName,
		o.TotalPrice,
		string(o.Status),
		o.CustomImageURL,
		o.Notes,
		o.CreatedAt,
	); err != nil {
		return storeErr("insert order", err)
	}

	const itemStmt = `
		INSERT INTO order_items (id, order_id, product_id, title, price, quantity, image_url, is_custom, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for i, item := range o.Items {
		if _, err := tx.Exec(ctx, itemStmt,
			item.ID,
			o.ID,
			item.ProductID,
			item.Title,
			item.Price,
			item.Quantity,
			item.ImageURL,
			item.IsCustom,
			item.Notes,
			i,
		); err != nil {
			return storeErr("insert order item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit order", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
		SELECT id, user_id, customer_name, total_price, status, custom_image_url, notes, created_at
		FROM orders
		WHERE id = $1;
	`
	var o domain.Order
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.CustomerName,
		&o.TotalPrice,
		&status,
		&o.CustomImageURL,
		&o.Notes,
		&o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("find order", err)
	}
	o.Status = domain.Status(status)

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, customer_name, total_price, status, custom_image_url, notes, created_at
		FROM orders
	`
	var args []any
	var where []string
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.CustomOnly {
		where = append(where, "EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.is_custom)")
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.CustomerName,
			&o.TotalPrice,
			&status,
			&o.CustomImageURL,
			&o.Notes,
			&o.CreatedAt,
		); err != nil {
			return nil, storeErr("scan order", err)
		}
		o.Status = domain.Status(status)
		orders = append(orders, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list orders", err)
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}
	return orders, nil
}

// UpdateStatus changes the status column and nothing else. The transition
// legality check happens in the domain before this is called; the single
// UPDATE is the only concurrency control.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const stmt = `UPDATE orders SET status = $2 WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, stmt, id, string(status))
	if err != nil {
		return storeErr("update status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.Item, error) {
	out := make(map[string][]domain.Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	const query = `
		SELECT order_id, id, product_id, title, price, quantity, image_url, is_custom, notes
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY position;
	`
	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, storeErr("load items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item domain.Item
		if err := rows.Scan(
			&orderID,
			&item.ID,
			&item.ProductID,
			&item.Title,
			&item.Price,
			&item.Quantity,
			&item.ImageURL,
			&item.IsCustom,
			&item.Notes,
		); err != nil {
			return nil, storeErr("scan item", err)
		}
		out[orderID] = append(out[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("load items", err)
	}
	return out, nil
}

// storeErr tags infrastructure failures so the transport layer can answer
// 503 and tell webhook senders to retry.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
