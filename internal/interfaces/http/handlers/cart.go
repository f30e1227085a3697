// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/cart"
	"github.com/your-org/audiosynthese-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	catalogService *catalog.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	store := cart.NewRedisStore(redisClient, cfg.Store.CartSessionTTL)
	return &CartHandler{
		cartService:    cart.NewService(store),
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// AddToCartRequest represents an add-to-cart submission
type AddToCartRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	ColorID   *uint `json:"color_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents a quantity change
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	c.JSON(http.StatusOK, gin.H{
		"data": h.cartService.Get(c.Request.Context(), sessionID),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.GetProduct(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	var color *catalog.ProductColor
	if req.ColorID != nil {
		color, err = h.catalogService.GetColor(req.ProductID, *req.ColorID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product color not found",
			})
			return
		}
	}

	cartResponse, err := h.cartService.AddItem(c.Request.Context(), sessionID, product, color, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.SetQuantity(c.Request.Context(), sessionID, uint(productID), colorIDFromQuery(c), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    cartResponse,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	cartResponse, err := h.cartService.Remove(c.Request.Context(), sessionID, uint(productID), colorIDFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// colorIDFromQuery parses the optional color_id query parameter
func colorIDFromQuery(c *gin.Context) *uint {
	param := c.Query("color_id")
	if param == "" {
		return nil
	}
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return nil
	}
	colorID := uint(id)
	return &colorID
}

// getOrCreateSessionID gets the cart session ID from the cookie or creates one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		maxAge := int(h.config.Store.CartSessionTTL.Seconds())
		c.SetCookie("session_id", sessionID, maxAge, "/", "", false, true)
	}

	return sessionID
}
