// Package handler exposes the storefront's domain services over HTTP. It
// maps JSON requests to service calls and domain errors to status codes;
// all business logic lives in the domain packages.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/electrocart/storefront/internal/domain/cart"
	"github.com/electrocart/storefront/internal/domain/order"
	"github.com/electrocart/storefront/internal/domain/product"
	"github.com/electrocart/storefront/internal/domain/wishlist"
)

// Handler bundles the HTTP handlers for the storefront API.
type Handler struct {
	products  product.Repository
	carts     *cart.Service
	wishlists *wishlist.Service
	orders    *order.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	products product.Repository,
	carts *cart.Service,
	wishlists *wishlist.Service,
	orders *order.Service,
) *Handler {
	return &Handler{
		products:  products,
		carts:     carts,
		wishlists: wishlists,
		orders:    orders,
	}
}

// Routes returns the API router. Mount it under /api.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/search", h.searchProducts)
		r.Get("/sorted/asc", h.listProductsByPriceAsc)
		r.Get("/sorted/desc", h.listProductsByPriceDesc)
		r.Get("/category/{category}", h.listProductsByCategory)
		r.Get("/{productID}", h.getProduct)
	})

	r.Route("/cart/{userID}", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Get("/total", h.cartTotal)
		r.Get("/count", h.cartItemCount)
		r.Post("/items", h.addCartItem)
		r.Put("/items/{productID}", h.setCartItemQuantity)
		r.Delete("/items/{productID}", h.removeCartItem)
	})

	r.Route("/wishlist/{userID}", func(r chi.Router) {
		r.Get("/", h.getWishlist)
		r.Delete("/", h.clearWishlist)
		r.Post("/items", h.addWishlistItem)
		r.Delete("/items/{productID}", h.removeWishlistItem)
		r.Get("/contains/{productID}", h.wishlistContains)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/checkout", h.checkout)
		r.Get("/user/{userID}", h.listOrdersByUser)
		r.Get("/status/{status}", h.listOrdersByStatus)
		r.Post("/{userID}", h.createOrder)
		r.Get("/{orderID}", h.getOrder)
		r.Put("/{orderID}/status", h.setOrderStatus)
		r.Post("/{orderID}/cancel", h.cancelOrder)
	})

	return r
}
