package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/electrocart/storefront/internal/domain/wishlist"
)

var _ wishlist.Repository = (*WishlistRepository)(nil)

// WishlistRepository implements wishlist.Repository backed by PostgreSQL.
type WishlistRepository struct {
	pool *pgxpool.Pool
}

// NewWishlistRepository returns a WishlistRepository that uses the given pool.
func NewWishlistRepository(pool *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// GetOrCreate returns the user's wishlist, inserting an empty one when none
// exists.
func (r *WishlistRepository) GetOrCreate(ctx context.Context, userID string) (*wishlist.Wishlist, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	if err := ensureWishlist(ctx, tx, userID); err != nil {
		return nil, err
	}

	w := &wishlist.Wishlist{UserID: userID}
	err = tx.QueryRow(ctx, `SELECT created_at FROM wishlists WHERE user_id = $1`, userID).Scan(&w.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "read wishlist")
	}

	rows, err := tx.Query(ctx, `
SELECT product_id FROM wishlist_items
WHERE user_id = $1
ORDER BY position
`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "read wishlist items")
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, errors.Wrap(err, "scan wishlist item")
		}
		w.ProductIDs = append(w.ProductIDs, productID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate wishlist items")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return w, nil
}

// Add inserts productID into the user's wishlist. Idempotent.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx)

	if err := ensureWishlist(ctx, tx, userID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO wishlist_items (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT (user_id, product_id) DO NOTHING
`, userID, productID)
	if err != nil {
		return errors.Wrap(err, "insert wishlist item")
	}
	return tx.Commit(ctx)
}

// Remove deletes productID from the user's wishlist. Silent no-op when
// absent.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2
`, userID, productID)
	if err != nil {
		return errors.Wrap(err, "delete wishlist item")
	}
	return nil
}

// Clear removes all items from the user's wishlist.
func (r *WishlistRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	if err != nil {
		return errors.Wrap(err, "clear wishlist items")
	}
	return nil
}

func ensureWishlist(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `
INSERT INTO wishlists (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING
`, userID)
	if err != nil {
		return errors.Wrap(err, "ensure wishlist")
	}
	return nil
}
