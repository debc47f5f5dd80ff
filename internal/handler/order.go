package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/cart-checkout/internal/domain/order"
)

type placeOrderRequest struct {
	UserID          *string `json:"user_id"`
	ShippingAddress string  `json:"shipping_address"`
}

type placeOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

// PlaceOrder handles POST /orders: converts the user's cart lines into a
// single order, re-pricing every line from the catalog of record.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid JSON body: " + err.Error(),
		})
		return
	}

	var ve ValidationError
	userID := stringField(&ve, "user_id", req.UserID)
	if !ve.ok() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error()})
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Cart is empty"})
			return
		}
		zctx.From(r.Context()).Error("Place order failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, placeOrderResponse{
		Message: "Order placed successfully",
		OrderID: o.ID,
	})
}
