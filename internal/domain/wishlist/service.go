package wishlist

import (
	"context"

	"github.com/go-faster/errors"
)

// Service exposes wishlist operations. Wishlist mutations are single atomic
// store calls, so no per-user locking is needed here.
type Service struct {
	wishlists Repository
}

// NewService creates a wishlist Service.
func NewService(wishlists Repository) *Service {
	return &Service{wishlists: wishlists}
}

// Get returns the user's wishlist, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) (*Wishlist, error) {
	w, err := s.wishlists.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get or create wishlist")
	}
	return w, nil
}

// Add puts productID into the user's wishlist. Adding a product that is
// already present leaves the wishlist unchanged.
func (s *Service) Add(ctx context.Context, userID, productID string) (*Wishlist, error) {
	if err := s.wishlists.Add(ctx, userID, productID); err != nil {
		return nil, errors.Wrap(err, "add to wishlist")
	}
	return s.Get(ctx, userID)
}

// Remove deletes productID from the user's wishlist. Silent no-op when the
// product is not present.
func (s *Service) Remove(ctx context.Context, userID, productID string) (*Wishlist, error) {
	if err := s.wishlists.Remove(ctx, userID, productID); err != nil {
		return nil, errors.Wrap(err, "remove from wishlist")
	}
	return s.Get(ctx, userID)
}

// Clear empties the user's wishlist.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.wishlists.Clear(ctx, userID); err != nil {
		return errors.Wrap(err, "clear wishlist")
	}
	return nil
}

// Contains reports whether productID is in the user's wishlist.
func (s *Service) Contains(ctx context.Context, userID, productID string) (bool, error) {
	w, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return w.Contains(productID), nil
}
