package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/electrocart/storefront/internal/domain/cart"
	"github.com/electrocart/storefront/internal/domain/order"
	"github.com/electrocart/storefront/internal/domain/product"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Error("Encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, errorResponse{Code: status, Message: msg})
}

// respondDomainError maps domain errors to HTTP status codes. Unrecognized
// errors become 500 with a generic message; the cause is logged, not leaked.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalidQty    *cart.InvalidQuantityError
		invalidStatus *order.InvalidStatusError
		missingProd   *order.ProductNotFoundError
	)
	switch {
	case errors.As(err, &invalidQty):
		respondError(w, r, http.StatusBadRequest, invalidQty.Error())
	case errors.As(err, &invalidStatus):
		respondError(w, r, http.StatusBadRequest, invalidStatus.Error())
	case errors.As(err, &missingProd):
		respondError(w, r, http.StatusUnprocessableEntity, missingProd.Error())
	case errors.Is(err, product.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "product not found")
	case errors.Is(err, order.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "order not found")
	default:
		zctx.From(r.Context()).Error("Request failed", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
