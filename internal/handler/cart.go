package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/cart-checkout/internal/domain/cart"
)

const addToCartErr = "Failed to add item to cart"

// addToCartRequest is the loosely-shaped wire payload. Pointer and raw fields
// distinguish an absent field from a zero value during validation.
type addToCartRequest struct {
	UserID      *string         `json:"user_id"`
	ProductID   *string         `json:"product_id"`
	ProductName *string         `json:"product_name"`
	Price       json.RawMessage `json:"price"`
}

// validate checks presence and shape of every required field and produces a
// strongly-typed domain request, or a ValidationError naming all offenders.
func (req *addToCartRequest) validate() (cart.AddItemRequest, *ValidationError) {
	var ve ValidationError

	userID := stringField(&ve, "user_id", req.UserID)
	productID := stringField(&ve, "product_id", req.ProductID)
	productName := stringField(&ve, "product_name", req.ProductName)

	var price decimal.Decimal
	if isNull(req.Price) {
		ve.Missing = append(ve.Missing, "price")
	} else if p, ok := parsePrice(req.Price); ok {
		price = p
	} else {
		ve.Invalid = append(ve.Invalid, "price")
	}

	if !ve.ok() {
		return cart.AddItemRequest{}, &ve
	}
	return cart.AddItemRequest{
		UserID:      userID,
		ProductID:   productID,
		ProductName: productName,
		Price:       price,
	}, nil
}

// AddToCart handles POST /cart: insert a new cart line with quantity 1, or
// bump an existing line's quantity and recompute its running price total.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   addToCartErr,
			Details: "invalid JSON body: " + err.Error(),
		})
		return
	}

	domainReq, ve := req.validate()
	if ve != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   addToCartErr,
			Details: ve.Error(),
		})
		return
	}

	result, err := h.carts.AddItem(r.Context(), domainReq)
	if err != nil {
		zctx.From(r.Context()).Error("Add to cart failed",
			zap.String("user_id", domainReq.UserID),
			zap.String("product_id", domainReq.ProductID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   addToCartErr,
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: result.Message})
}
