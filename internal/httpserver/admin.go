package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopswift/internal/catalog"
	"shopswift/internal/domain"
	"shopswift/internal/enhancer"
	"shopswift/internal/importer"
)

const maxImportBytes = 5 << 20

// addProductRequest accepts price as a JSON number or a string.
type addProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	InStock     *bool           `json:"inStock"`
}

func (r addProductRequest) input() catalog.ProductInput {
	price := strings.TrimSpace(string(r.Price))
	var s string
	if err := json.Unmarshal(r.Price, &s); err == nil {
		price = s
	} else if price == "null" {
		price = ""
	}
	return catalog.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		InStock:     r.InStock,
	}
}

func (h *handlers) adminStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats())
}

func (h *handlers) addProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := h.catalog.Add(req.input())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeFieldErrors(c, http.StatusBadRequest, "Invalid product", verr.Fields)
			return
		}
		h.logger.Error("add product", zap.Error(err))
		writeError(c, http.StatusInternalServerError, "Failed to add product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) removeProduct(c *gin.Context) {
	if err := h.catalog.Remove(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Product not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to remove product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) toggleStock(c *gin.Context) {
	p, err := h.catalog.ToggleStock(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Product not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, p)
}

// enhanceDescription never touches the catalog; the admin decides whether to
// use the returned copy.
func (h *handlers) enhanceDescription(c *gin.Context) {
	var req enhancer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.enhancer.Enhance(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, enhancer.ErrEmptyDescription) {
			writeError(c, http.StatusBadRequest, "Please provide a description to enhance")
			return
		}
		h.logger.Warn("enhance description", zap.Error(err))
		writeError(c, http.StatusBadGateway, "Failed to enhance description.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// importProducts takes a catalog CSV as the raw request body.
func (h *handlers) importProducts(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	n, err := importer.NewCSVImporter(body, h.catalog).Run(c.Request.Context())
	if err != nil {
		var (
			verr     *domain.ValidationError
			tooLarge *http.MaxBytesError
		)
		switch {
		case errors.As(err, &tooLarge):
			writeError(c, http.StatusRequestEntityTooLarge, "CSV file is too large")
		case errors.As(err, &verr):
			writeFieldErrors(c, http.StatusBadRequest, err.Error(), verr.Fields)
		default:
			writeError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	h.logger.Info("products imported", zap.Int("count", n))
	c.JSON(http.StatusOK, gin.H{"imported": n, "stats": h.catalog.Stats()})
}
