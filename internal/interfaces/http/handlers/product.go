// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	req := &catalog.ListRequest{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Featured: c.Query("featured") == "true",
	}

	products, err := h.catalogService.ListProducts(req)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"products": products,
			"count":    len(products),
		},
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	product, err := h.catalogService.GetProduct(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": product,
	})
}

// GetProductBySlug handles GET /products/slug/:slug
func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.catalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": product,
	})
}

// ListCategories handles GET /categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	type categoryInfo struct {
		Value     string `json:"value"`
		Label     string `json:"label"`
		Orderable bool   `json:"orderable"`
	}

	categories := make([]categoryInfo, 0)
	for _, value := range catalog.Categories() {
		categories = append(categories, categoryInfo{
			Value:     value,
			Label:     catalog.CategoryLabel(value),
			Orderable: catalog.IsOrderable(value),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"categories": categories,
		},
	})
}
