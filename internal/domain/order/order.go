package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Status is an order's lifecycle stage. It is stored as upper-case text and
// parsed case-insensitively on input. The set is closed; transitions between
// statuses are unrestricted (any status may move to any other), matching the
// storefront's operational model where staff correct statuses freely.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPending, StatusShipped, StatusDelivered, StatusCancelled}

// InvalidStatusError indicates a textual status name did not parse.
type InvalidStatusError struct {
	Name string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Name)
}

// ParseStatus converts a textual status name to a Status, ignoring case.
func ParseStatus(name string) (Status, error) {
	s := Status(strings.ToUpper(name))
	for _, known := range Statuses {
		if s == known {
			return s, nil
		}
	}
	return "", &InvalidStatusError{Name: name}
}

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

// ProductNotFoundError indicates a cart line references a product that no
// longer exists in the catalog. Checkout aborts entirely when this occurs.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// Line is an immutable snapshot of a product at the moment of order
// creation. Name and unit price are copied from the catalog so later price
// changes never retroactively alter historical orders.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Order is a durable record of a checked-out cart. Everything except Status
// is immutable once persisted. TotalPrice is computed at checkout and never
// recomputed; the invariant Σ(line.UnitPrice × line.Quantity) == TotalPrice
// holds at creation time.
type Order struct {
	ID         string
	UserID     string
	Lines      []Line
	TotalPrice decimal.Decimal
	Status     Status
	CreatedAt  time.Time

	// Shipping and contact metadata, populated only by the full checkout
	// flow. The bare create-order flow leaves them empty.
	FirstName       string
	LastName        string
	ShippingAddress string
	PaymentMethod   string
	Notes           string
}

// Repository defines persistence operations for orders.
type Repository interface {
	// CreateFromCart persists the order and clears the originating user's
	// cart in one transaction. The order insert is ordered before the cart
	// clear so a crash can never empty a cart without a durable order.
	CreateFromCart(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListByStatus(ctx context.Context, status Status) ([]Order, error)
	// UpdateStatus overwrites the order's status. Returns ErrNotFound when
	// the order does not exist.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
