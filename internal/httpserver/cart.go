package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopswift/internal/domain"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type stepCartItemRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).Cart.Snapshot())
}

func (h *handlers) clearCart(c *gin.Context) {
	sessionFrom(c).Cart.Clear()
	c.Status(http.StatusNoContent)
}

// addCartItem checks stock here; the cart itself accepts anything.
func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	product, err := h.catalog.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Product not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if !product.InStock {
		writeError(c, http.StatusConflict, "Product is out of stock")
		return
	}
	cart := sessionFrom(c).Cart
	cart.Add(product, req.Quantity)
	c.JSON(http.StatusOK, cart.Snapshot())
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	cart := sessionFrom(c).Cart
	cart.UpdateQuantity(c.Param("productId"), *req.Quantity)
	c.JSON(http.StatusOK, cart.Snapshot())
}

func (h *handlers) stepCartItem(c *gin.Context) {
	var req stepCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	cart := sessionFrom(c).Cart
	cart.Step(c.Param("productId"), *req.Delta)
	c.JSON(http.StatusOK, cart.Snapshot())
}

func (h *handlers) removeCartItem(c *gin.Context) {
	sessionFrom(c).Cart.Remove(c.Param("productId"))
	c.Status(http.StatusNoContent)
}
