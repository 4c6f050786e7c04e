package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/electrocart/storefront/internal/domain/cart"
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL. Every
// mutation is a single statement or a short transaction, so two concurrent
// requests can never observe a partially applied cart write.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// GetOrCreate returns the user's cart, inserting an empty one when none
// exists. The upsert and the read run in one transaction so concurrent
// first-time accesses cannot create duplicate carts.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID string) (*cart.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	c, err := getOrCreateCart(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return c, nil
}

// AddLine increments the quantity of an existing line or appends a new one.
func (r *CartRepository) AddLine(ctx context.Context, userID, productID string, qty int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	if err := ensureCart(ctx, tx, userID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO cart_lines (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`, userID, productID, qty)
	if err != nil {
		return errors.Wrap(err, "upsert cart line")
	}
	return tx.Commit(ctx)
}

// SetLineQuantity overwrites the quantity of the matching line. A missing
// line is a silent no-op: zero rows affected is not an error.
func (r *CartRepository) SetLineQuantity(ctx context.Context, userID, productID string, qty int) error {
	_, err := r.pool.Exec(ctx, `
UPDATE cart_lines SET quantity = $3
WHERE user_id = $1 AND product_id = $2
`, userID, productID, qty)
	if err != nil {
		return errors.Wrap(err, "update cart line")
	}
	return nil
}

// RemoveLine deletes the matching line. Silent no-op when absent.
func (r *CartRepository) RemoveLine(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2
`, userID, productID)
	if err != nil {
		return errors.Wrap(err, "delete cart line")
	}
	return nil
}

// Clear removes all lines from the user's cart.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return errors.Wrap(err, "clear cart lines")
	}
	return nil
}

// ensureCart inserts the cart row when missing. Used by mutations so a line
// write never dangles without its parent cart.
func ensureCart(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `
INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING
`, userID)
	if err != nil {
		return errors.Wrap(err, "ensure cart")
	}
	return nil
}

// getOrCreateCart upserts the cart row and reads it back with its lines in
// insertion order. Shared with the order repository's checkout transaction.
func getOrCreateCart(ctx context.Context, tx pgx.Tx, userID string) (*cart.Cart, error) {
	if err := ensureCart(ctx, tx, userID); err != nil {
		return nil, err
	}

	c := &cart.Cart{UserID: userID}
	err := tx.QueryRow(ctx, `SELECT created_at FROM carts WHERE user_id = $1`, userID).Scan(&c.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "read cart")
	}

	rows, err := tx.Query(ctx, `
SELECT product_id, quantity FROM cart_lines
WHERE user_id = $1
ORDER BY position
`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "read cart lines")
	}
	defer rows.Close()

	for rows.Next() {
		var line cart.Line
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, errors.Wrap(err, "scan cart line")
		}
		c.Lines = append(c.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate cart lines")
	}
	return c, nil
}
