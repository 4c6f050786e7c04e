package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/electrocart/storefront/internal/domain/cart"
	"github.com/electrocart/storefront/internal/domain/product"
	"github.com/electrocart/storefront/pkg/keymutex"
)

// CheckoutRequest holds the shipping and contact metadata for the full
// checkout flow. Payment processing is not modeled: PaymentMethod is
// recorded verbatim.
type CheckoutRequest struct {
	UserID          string
	FirstName       string
	LastName        string
	ShippingAddress string
	PaymentMethod   string
	Notes           string
}

// Service converts carts into orders and manages the order lifecycle.
type Service struct {
	orders   Repository
	carts    cart.Repository
	products product.Repository
	locks    *keymutex.KeyMutex
	now      func() time.Time
}

// NewService creates an order Service. The keymutex must be the same
// instance used by the cart service: checkout holds the user's lock across
// its whole read-snapshot-persist-clear sequence, so no cart mutation can
// interleave with it.
func NewService(
	orders Repository,
	carts cart.Repository,
	products product.Repository,
	locks *keymutex.KeyMutex,
) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		products: products,
		locks:    locks,
		now:      time.Now,
	}
}

// CreateOrder converts the user's cart into an order without shipping
// metadata.
func (s *Service) CreateOrder(ctx context.Context, userID string) (*Order, error) {
	return s.placeOrder(ctx, CheckoutRequest{UserID: userID})
}

// Checkout converts the user's cart into an order carrying the supplied
// shipping and contact metadata.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	return s.placeOrder(ctx, req)
}

// placeOrder is the single checkout pipeline behind CreateOrder and
// Checkout. It snapshots every cart line against the live catalog, computes
// the total, and persists the order together with the cart clear in one
// store transaction. A dangling product id aborts the whole checkout: no
// order is persisted and the cart is left intact.
func (s *Service) placeOrder(ctx context.Context, req CheckoutRequest) (*Order, error) {
	s.locks.Lock(req.UserID)
	defer s.locks.Unlock(req.UserID)

	c, err := s.carts.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	lines := make([]Line, 0, len(c.Lines))
	total := decimal.Zero

	if len(c.Lines) > 0 {
		ids := make([]string, len(c.Lines))
		for i, line := range c.Lines {
			ids[i] = line.ProductID
		}
		resolved, err := s.products.GetByIDs(ctx, ids)
		if err != nil {
			return nil, errors.Wrap(err, "resolve products")
		}
		byID := make(map[string]product.Product, len(resolved))
		for _, p := range resolved {
			byID[p.ID] = p
		}

		for _, line := range c.Lines {
			p, ok := byID[line.ProductID]
			if !ok {
				return nil, &ProductNotFoundError{ProductID: line.ProductID}
			}
			lines = append(lines, Line{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: p.Price,
				Quantity:  line.Quantity,
			})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}

	o := &Order{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Lines:           lines,
		TotalPrice:      total,
		Status:          StatusPending,
		CreatedAt:       s.now().UTC(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}

	if err := s.orders.CreateFromCart(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// GetByID returns a single order.
func (s *Service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns every persisted order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}

// ListByUser returns all orders placed by the given user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListByStatus parses the textual status name and returns matching orders.
// An unparseable name fails with InvalidStatusError.
func (s *Service) ListByStatus(ctx context.Context, statusName string) ([]Order, error) {
	status, err := ParseStatus(statusName)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByStatus(ctx, status)
}

// SetStatus parses the textual status name and overwrites the order's
// status. Fails with InvalidStatusError for unknown names (leaving the prior
// status untouched) and ErrNotFound for a missing order. Transitions are
// unrestricted.
func (s *Service) SetStatus(ctx context.Context, id, statusName string) (*Order, error) {
	status, err := ParseStatus(statusName)
	if err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

// Cancel unconditionally sets the order's status to CANCELLED, regardless of
// its current status. Cancelling an already cancelled order is a no-op by
// construction, so the operation is idempotent.
func (s *Service) Cancel(ctx context.Context, id string) (*Order, error) {
	if err := s.orders.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}
