// Package handler exposes the cart and checkout operations over HTTP JSON.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/cart-checkout/internal/domain/cart"
	"github.com/xenking/cart-checkout/internal/domain/order"
	"github.com/xenking/cart-checkout/internal/domain/product"
)

// Handler holds the domain dependencies for all HTTP endpoints.
type Handler struct {
	carts    *cart.Service
	orders   *order.Service
	products product.Repository
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(carts *cart.Service, orders *order.Service, products product.Repository) *Handler {
	return &Handler{
		carts:    carts,
		orders:   orders,
		products: products,
	}
}

// Routes returns the API route tree. The caller mounts it under its prefix.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/cart", h.AddToCart)
	r.Post("/orders", h.PlaceOrder)
	r.Get("/products", h.ListProducts)
	r.Get("/products/{product_id}", h.GetProduct)
	return r
}

// errorResponse is the JSON body for every failed operation. Details is only
// populated by add-to-cart, which historically reported a two-field error.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
