package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/electrocart/storefront/internal/domain/product"
	"github.com/electrocart/storefront/pkg/keymutex"
)

// Service exposes cart operations with per-user mutual exclusion. Two
// concurrent requests for the same user are serialized so read-modify-write
// cycles cannot interleave and lose updates; requests for distinct users
// proceed concurrently.
type Service struct {
	carts    Repository
	products product.Repository
	locks    *keymutex.KeyMutex
}

// NewService creates a cart Service. The keymutex is shared with the order
// service so checkout and cart mutations for the same user exclude each other.
func NewService(carts Repository, products product.Repository, locks *keymutex.KeyMutex) *Service {
	return &Service{
		carts:    carts,
		products: products,
		locks:    locks,
	}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get or create cart")
	}
	return c, nil
}

// AddLine merges qty into an existing line for productID or appends a new
// line. Non-positive quantities are rejected before any store call.
func (s *Service) AddLine(ctx context.Context, userID, productID string, qty int) (*Cart, error) {
	if qty < 1 {
		return nil, &InvalidQuantityError{ProductID: productID, Quantity: qty}
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if err := s.carts.AddLine(ctx, userID, productID, qty); err != nil {
		return nil, errors.Wrap(err, "add line")
	}
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "reload cart")
	}
	return c, nil
}

// SetLineQuantity overwrites the quantity of the matching line. A cart
// without the product is left unchanged: the miss is deliberately silent,
// matching the store contract.
func (s *Service) SetLineQuantity(ctx context.Context, userID, productID string, qty int) (*Cart, error) {
	if qty < 1 {
		return nil, &InvalidQuantityError{ProductID: productID, Quantity: qty}
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if err := s.carts.SetLineQuantity(ctx, userID, productID, qty); err != nil {
		return nil, errors.Wrap(err, "set line quantity")
	}
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "reload cart")
	}
	return c, nil
}

// RemoveLine removes at most one matching line. Silent no-op when absent.
func (s *Service) RemoveLine(ctx context.Context, userID, productID string) (*Cart, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if err := s.carts.RemoveLine(ctx, userID, productID); err != nil {
		return nil, errors.Wrap(err, "remove line")
	}
	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "reload cart")
	}
	return c, nil
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID string) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if err := s.carts.Clear(ctx, userID); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}

// TotalPrice resolves every line against the live catalog and sums
// price × quantity. Because carts hold only product ids, a product removed
// from the catalog surfaces as product.ErrNotFound here.
func (s *Service) TotalPrice(ctx context.Context, userID string) (decimal.Decimal, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "get or create cart")
	}

	total := decimal.Zero
	for _, line := range c.Lines {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "resolve product %s", line.ProductID)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

// ItemCount returns the sum of quantities across all lines.
func (s *Service) ItemCount(ctx context.Context, userID string) (int, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "get or create cart")
	}

	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count, nil
}
