package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopswift/internal/catalog"
	"shopswift/internal/domain"
)

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Results: items}
}

func (h *handlers) createSession(c *gin.Context) {
	sess, err := h.sessions.Issue(c.Request.Context())
	if err != nil {
		h.logger.Error("issue session", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token": sess.Token,
		"state": sess.Auth.State().String(),
	})
}

func (h *handlers) listProducts(c *gin.Context) {
	products := h.catalog.List(catalog.Filter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	c.JSON(http.StatusOK, newList(products))
}

func (h *handlers) getProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Product not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to load product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, newList(h.catalog.Categories()))
}
