package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/electrocart/storefront/internal/domain/wishlist"
)

type wishlistView struct {
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productIds"`
}

func toWishlistView(w *wishlist.Wishlist) wishlistView {
	ids := w.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	return wishlistView{UserID: w.UserID, ProductIDs: ids}
}

type addWishlistItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	wl, err := h.wishlists.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toWishlistView(wl))
}

func (h *Handler) addWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req addWishlistItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "productId required")
		return
	}

	wl, err := h.wishlists.Add(r.Context(), chi.URLParam(r, "userID"), req.ProductID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toWishlistView(wl))
}

func (h *Handler) removeWishlistItem(w http.ResponseWriter, r *http.Request) {
	wl, err := h.wishlists.Remove(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toWishlistView(wl))
}

func (h *Handler) clearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlists.Clear(r.Context(), chi.URLParam(r, "userID")); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) wishlistContains(w http.ResponseWriter, r *http.Request) {
	contains, err := h.wishlists.Contains(r.Context(),
		chi.URLParam(r, "userID"), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]bool{"contains": contains})
}
