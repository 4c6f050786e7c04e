package cart

import (
	"context"
	"fmt"
	"time"
)

// Cart is a per-user staging area of product references prior to order
// creation. It never holds price data: prices are resolved live against the
// catalog so a cart always reflects current pricing.
type Cart struct {
	UserID    string
	Lines     []Line
	CreatedAt time.Time
}

// Line is a single (product, quantity) pair in a cart. Quantity is always
// at least 1 after any successful mutation.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// InvalidQuantityError indicates a mutation supplied a non-positive quantity.
// Quantities are validated at the service boundary so invalid input never
// reaches the store.
type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity %d must be greater than 0 for product %s", e.Quantity, e.ProductID)
}

// Repository defines persistence operations for carts. Each mutation is a
// single atomic store call; GetOrCreate performs upsert-on-read so a missing
// cart is never observable by callers.
type Repository interface {
	// GetOrCreate returns the user's cart, creating an empty one when none
	// exists. Creation and read happen in one store call.
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	// AddLine increments the quantity of an existing line by qty, or appends
	// a new line when the product is not yet in the cart.
	AddLine(ctx context.Context, userID, productID string, qty int) error
	// SetLineQuantity overwrites the quantity of the matching line. When the
	// line is absent this is a silent no-op.
	SetLineQuantity(ctx context.Context, userID, productID string, qty int) error
	// RemoveLine removes the matching line. Silent no-op when absent.
	RemoveLine(ctx context.Context, userID, productID string) error
	// Clear removes all lines from the user's cart.
	Clear(ctx context.Context, userID string) error
}
