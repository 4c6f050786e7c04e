package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. The catalog is
// read-only from the storefront's point of view: carts reference products by
// ID and resolve prices live, while orders snapshot name and price at
// checkout time.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	SearchByName(ctx context.Context, name string) ([]Product, error)
	ListSortedByPrice(ctx context.Context, desc bool) ([]Product, error)
}
