package wishlist

import (
	"context"
	"slices"
	"time"
)

// Wishlist is a per-user set of product ids, created lazily on first access
// just like the cart.
type Wishlist struct {
	UserID     string
	ProductIDs []string
	CreatedAt  time.Time
}

// Contains reports whether productID is in the wishlist.
func (w *Wishlist) Contains(productID string) bool {
	return slices.Contains(w.ProductIDs, productID)
}

// Repository defines persistence operations for wishlists. Add is
// idempotent; Remove is a silent no-op for absent products.
type Repository interface {
	GetOrCreate(ctx context.Context, userID string) (*Wishlist, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}
