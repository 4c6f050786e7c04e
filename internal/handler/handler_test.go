package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electrocart/storefront/internal/domain/cart"
	"github.com/electrocart/storefront/internal/domain/order"
	"github.com/electrocart/storefront/internal/domain/product"
	"github.com/electrocart/storefront/internal/domain/wishlist"
	"github.com/electrocart/storefront/pkg/keymutex"
)

// --- Mock implementations ---

type mockProductRepo struct {
	products []product.Product
}

func newProductRepo(products ...product.Product) *mockProductRepo {
	return &mockProductRepo{products: products}
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) {
	return m.products, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, product.ErrNotFound
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) ListByCategory(_ context.Context, category string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) SearchByName(_ context.Context, name string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) ListSortedByPrice(_ context.Context, desc bool) ([]product.Product, error) {
	out := slices.Clone(m.products)
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].Price.GreaterThan(out[j].Price)
		}
		return out[i].Price.LessThan(out[j].Price)
	})
	return out, nil
}

type mockCartRepo struct {
	carts map[string]*cart.Cart
}

func newCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]*cart.Cart)}
}

func (m *mockCartRepo) GetOrCreate(_ context.Context, userID string) (*cart.Cart, error) {
	c, ok := m.carts[userID]
	if !ok {
		c = &cart.Cart{UserID: userID}
		m.carts[userID] = c
	}
	cp := *c
	cp.Lines = append([]cart.Line(nil), c.Lines...)
	return &cp, nil
}

func (m *mockCartRepo) AddLine(_ context.Context, userID, productID string, qty int) error {
	c, ok := m.carts[userID]
	if !ok {
		c = &cart.Cart{UserID: userID}
		m.carts[userID] = c
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += qty
			return nil
		}
	}
	c.Lines = append(c.Lines, cart.Line{ProductID: productID, Quantity: qty})
	return nil
}

func (m *mockCartRepo) SetLineQuantity(_ context.Context, userID, productID string, qty int) error {
	if c, ok := m.carts[userID]; ok {
		for i := range c.Lines {
			if c.Lines[i].ProductID == productID {
				c.Lines[i].Quantity = qty
			}
		}
	}
	return nil
}

func (m *mockCartRepo) RemoveLine(_ context.Context, userID, productID string) error {
	if c, ok := m.carts[userID]; ok {
		c.Lines = slices.DeleteFunc(c.Lines, func(l cart.Line) bool {
			return l.ProductID == productID
		})
	}
	return nil
}

func (m *mockCartRepo) Clear(_ context.Context, userID string) error {
	if c, ok := m.carts[userID]; ok {
		c.Lines = nil
	}
	return nil
}

type mockWishlistRepo struct {
	lists map[string][]string
}

func newWishlistRepo() *mockWishlistRepo {
	return &mockWishlistRepo{lists: make(map[string][]string)}
}

func (m *mockWishlistRepo) GetOrCreate(_ context.Context, userID string) (*wishlist.Wishlist, error) {
	return &wishlist.Wishlist{UserID: userID, ProductIDs: slices.Clone(m.lists[userID])}, nil
}

func (m *mockWishlistRepo) Add(_ context.Context, userID, productID string) error {
	if !slices.Contains(m.lists[userID], productID) {
		m.lists[userID] = append(m.lists[userID], productID)
	}
	return nil
}

func (m *mockWishlistRepo) Remove(_ context.Context, userID, productID string) error {
	m.lists[userID] = slices.DeleteFunc(m.lists[userID], func(id string) bool {
		return id == productID
	})
	return nil
}

func (m *mockWishlistRepo) Clear(_ context.Context, userID string) error {
	m.lists[userID] = nil
	return nil
}

type mockOrderRepo struct {
	orders map[string]*order.Order
	carts  *mockCartRepo
}

func newOrderRepo(carts *mockCartRepo) *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*order.Order), carts: carts}
}

func (m *mockOrderRepo) CreateFromCart(_ context.Context, o *order.Order) error {
	cp := *o
	m.orders[o.ID] = &cp
	if c, ok := m.carts.carts[o.UserID]; ok {
		c.Lines = nil
	}
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListByStatus(_ context.Context, status order.Status) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status) error {
	o, ok := m.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	return nil
}

// --- Helpers ---

type fixture struct {
	api   http.Handler
	carts *mockCartRepo
}

func newFixture(products ...product.Product) *fixture {
	repo := newProductRepo(products...)
	carts := newCartRepo()
	locks := keymutex.New()

	h := NewHandler(
		repo,
		cart.NewService(carts, repo, locks),
		wishlist.NewService(newWishlistRepo()),
		order.NewService(newOrderRepo(carts), carts, repo, locks),
	)
	return &fixture{api: h.Routes(), carts: carts}
}

func testProduct(id, name, category, price string) product.Product {
	return product.Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.api.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// --- Product endpoints ---

func TestListProducts(t *testing.T) {
	f := newFixture(
		testProduct("p1", "Laptop", "Laptops", "999.99"),
		testProduct("p2", "Phone", "Phones", "499.00"),
	)

	rec := f.do(t, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	products := decodeJSON[[]productView](t, rec)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, 999.99, products[0].Price)
}

func TestGetProduct(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "999.99"))

	rec := f.do(t, http.MethodGet, "/products/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decodeJSON[productView](t, rec)
	assert.Equal(t, "Laptop", p.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/products/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeJSON[errorResponse](t, rec)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListProductsByCategory(t *testing.T) {
	f := newFixture(
		testProduct("p1", "Laptop", "Laptops", "999.99"),
		testProduct("p2", "Phone", "Phones", "499.00"),
	)

	rec := f.do(t, http.MethodGet, "/products/category/Phones", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	products := decodeJSON[[]productView](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID)
}

func TestSearchProducts(t *testing.T) {
	f := newFixture(
		testProduct("p1", "Gaming Laptop", "Laptops", "1500.00"),
		testProduct("p2", "Phone", "Phones", "499.00"),
	)

	rec := f.do(t, http.MethodGet, "/products/search?name=laptop", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	products := decodeJSON[[]productView](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestListProductsSortedByPrice(t *testing.T) {
	f := newFixture(
		testProduct("p1", "Laptop", "Laptops", "999.99"),
		testProduct("p2", "Phone", "Phones", "499.00"),
	)

	rec := f.do(t, http.MethodGet, "/products/sorted/asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	asc := decodeJSON[[]productView](t, rec)
	require.Len(t, asc, 2)
	assert.Equal(t, "p2", asc[0].ID)

	rec = f.do(t, http.MethodGet, "/products/sorted/desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	desc := decodeJSON[[]productView](t, rec)
	require.Len(t, desc, 2)
	assert.Equal(t, "p1", desc[0].ID)
}

// --- Cart endpoints ---

func TestGetCart_CreatesEmpty(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/cart/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	c := decodeJSON[cartView](t, rec)
	assert.Equal(t, "u1", c.UserID)
	assert.Empty(t, c.Lines)
}

func TestAddCartItem(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "999.99"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	c := decodeJSON[cartView](t, rec)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestAddCartItem_InvalidQuantity(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCartItem_MissingProductID(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{Quantity: 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCartItem_MalformedBody(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/cart/u1/items", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	f.api.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetCartItemQuantity(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, "/cart/u1/items/p1", setQuantityRequest{Quantity: 7})
	require.Equal(t, http.StatusOK, rec.Code)

	c := decodeJSON[cartView](t, rec)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 7, c.Lines[0].Quantity)
}

func TestRemoveCartItem(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/cart/u1/items/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	c := decodeJSON[cartView](t, rec)
	assert.Empty(t, c.Lines)
}

func TestClearCart(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/cart/u1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/cart/u1", nil)
	c := decodeJSON[cartView](t, rec)
	assert.Empty(t, c.Lines)
}

func TestCartTotal(t *testing.T) {
	f := newFixture(
		testProduct("p1", "Laptop", "Laptops", "10.00"),
		testProduct("p2", "Mouse", "Accessories", "25.50"),
	)

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p2", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/cart/u1/total", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[map[string]float64](t, rec)
	assert.Equal(t, 45.5, resp["total"])
}

func TestCartItemCount(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p2", Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/cart/u1/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[map[string]int](t, rec)
	assert.Equal(t, 5, resp["count"])
}

// --- Wishlist endpoints ---

func TestWishlistAddAndContains(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/wishlist/u1/items", addWishlistItemRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	w := decodeJSON[wishlistView](t, rec)
	assert.Equal(t, []string{"p1"}, w.ProductIDs)

	rec = f.do(t, http.MethodGet, "/wishlist/u1/contains/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[map[string]bool](t, rec)
	assert.True(t, resp["contains"])

	rec = f.do(t, http.MethodGet, "/wishlist/u1/contains/p2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeJSON[map[string]bool](t, rec)
	assert.False(t, resp["contains"])
}

func TestWishlistRemove(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/wishlist/u1/items", addWishlistItemRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/wishlist/u1/items/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	w := decodeJSON[wishlistView](t, rec)
	assert.Empty(t, w.ProductIDs)
}

func TestClearWishlist(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/wishlist/u1/items", addWishlistItemRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/wishlist/u1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

// --- Order endpoints ---

func TestCheckout(t *testing.T) {
	f := newFixture(
		testProduct("p1", "Laptop", "Laptops", "10.00"),
		testProduct("p2", "Mouse", "Accessories", "25.00"),
	)

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p2", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/orders/checkout", checkoutRequest{
		UserID:          "u1",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		ShippingAddress: "12 Analytical Lane",
		PaymentMethod:   "card",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	o := decodeJSON[orderView](t, rec)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, "PENDING", o.Status)
	assert.Equal(t, 45.0, o.TotalPrice)
	assert.Equal(t, "Ada", o.FirstName)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Laptop", o.Items[0].Name)
	assert.Equal(t, 10.0, o.Items[0].UnitPrice)

	// Checkout empties the cart.
	rec = f.do(t, http.MethodGet, "/cart/u1", nil)
	c := decodeJSON[cartView](t, rec)
	assert.Empty(t, c.Lines)
}

func TestCheckout_MissingUserID(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/orders/checkout", checkoutRequest{FirstName: "Ada"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_DanglingProduct(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "gone", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/orders/checkout", checkoutRequest{UserID: "u1"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The cart survives the failed checkout.
	rec = f.do(t, http.MethodGet, "/cart/u1", nil)
	c := decodeJSON[cartView](t, rec)
	require.Len(t, c.Lines, 1)
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/orders/u1", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	o := decodeJSON[orderView](t, rec)
	assert.Equal(t, "u1", o.UserID)
	assert.Empty(t, o.FirstName)
}

func TestGetOrder(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/orders/u1", nil)
	created := decodeJSON[orderView](t, rec)

	rec = f.do(t, http.MethodGet, "/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	o := decodeJSON[orderView](t, rec)
	assert.Equal(t, created.ID, o.ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/orders/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetOrderStatus(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/orders/u1", nil)
	created := decodeJSON[orderView](t, rec)

	rec = f.do(t, http.MethodPut, "/orders/"+created.ID+"/status", setStatusRequest{Status: "shipped"})
	require.Equal(t, http.StatusOK, rec.Code)

	o := decodeJSON[orderView](t, rec)
	assert.Equal(t, "SHIPPED", o.Status)
}

func TestSetOrderStatus_Invalid(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/orders/u1", nil)
	created := decodeJSON[orderView](t, rec)

	rec = f.do(t, http.MethodPut, "/orders/"+created.ID+"/status", setStatusRequest{Status: "BOGUS"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/orders/u1", nil)
	created := decodeJSON[orderView](t, rec)

	rec = f.do(t, http.MethodPost, "/orders/"+created.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	o := decodeJSON[orderView](t, rec)
	assert.Equal(t, "CANCELLED", o.Status)

	// Cancelling again succeeds and stays cancelled.
	rec = f.do(t, http.MethodPost, "/orders/"+created.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListOrdersByStatus(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/orders/u1", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/orders/status/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeJSON[[]orderView](t, rec)
	require.Len(t, pending, 1)

	rec = f.do(t, http.MethodGet, "/orders/status/nope", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrdersByUser(t *testing.T) {
	f := newFixture(testProduct("p1", "Laptop", "Laptops", "10.00"))

	rec := f.do(t, http.MethodPost, "/cart/u1/items", addCartItemRequest{ProductID: "p1", Quantity: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodPost, "/orders/u1", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/orders/user/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decodeJSON[[]orderView](t, rec)
	require.Len(t, orders, 1)

	rec = f.do(t, http.MethodGet, "/orders/user/u2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders = decodeJSON[[]orderView](t, rec)
	assert.Empty(t, orders)
}
