package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/electrocart/storefront/internal/domain/product"
)

// productView is the JSON representation of a catalog product. Prices are
// rendered as JSON numbers.
type productView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

func toProductView(p product.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}

func toProductViews(products []product.Product) []productView {
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = toProductView(p)
	}
	return out
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toProductViews(products))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toProductView(*p))
}

func (h *Handler) listProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toProductViews(products))
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	products, err := h.products.SearchByName(r.Context(), name)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toProductViews(products))
}

func (h *Handler) listProductsByPriceAsc(w http.ResponseWriter, r *http.Request) {
	h.listProductsSorted(w, r, false)
}

func (h *Handler) listProductsByPriceDesc(w http.ResponseWriter, r *http.Request) {
	h.listProductsSorted(w, r, true)
}

func (h *Handler) listProductsSorted(w http.ResponseWriter, r *http.Request, desc bool) {
	products, err := h.products.ListSortedByPrice(r.Context(), desc)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toProductViews(products))
}
