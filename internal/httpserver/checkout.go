package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopswift/internal/domain"
	"shopswift/internal/service/checkout"
)

func (h *handlers) placeOrder(c *gin.Context) {
	var form domain.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	sess := sessionFrom(c)
	conf, err := h.checkout.PlaceOrder(c.Request.Context(), sess.Cart, sess.Auth.CurrentUser(), form)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(c, http.StatusConflict, "Your cart is empty")
		case errors.As(err, &verr):
			writeFieldErrors(c, http.StatusBadRequest, "Please correct the highlighted fields", verr.Fields)
		default:
			h.logger.Error("place order", zap.Error(err))
			writeError(c, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": checkout.SuccessMessage,
		"order":   conf,
	})
}
