package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/electrocart/storefront/internal/domain/cart"
)

type cartLineView struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartView struct {
	UserID string         `json:"userId"`
	Lines  []cartLineView `json:"items"`
}

func toCartView(c *cart.Cart) cartView {
	lines := make([]cartLineView, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = cartLineView{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return cartView{UserID: c.UserID, Lines: lines}
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartView(c))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "productId required")
		return
	}

	c, err := h.carts.AddLine(r.Context(), chi.URLParam(r, "userID"), req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartView(c))
}

func (h *Handler) setCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.carts.SetLineQuantity(r.Context(),
		chi.URLParam(r, "userID"), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartView(c))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.RemoveLine(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartView(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), chi.URLParam(r, "userID")); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cartTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.carts.TotalPrice(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]float64{"total": total.InexactFloat64()})
}

func (h *Handler) cartItemCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.carts.ItemCount(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int{"count": count})
}
