// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/cart"
	"github.com/your-org/audiosynthese-backend/internal/domain/checkout"
	"github.com/your-org/audiosynthese-backend/internal/domain/customer"
	"github.com/your-org/audiosynthese-backend/internal/domain/inventory"
	"github.com/your-org/audiosynthese-backend/internal/domain/invoice"
	"github.com/your-org/audiosynthese-backend/internal/domain/user"
	"github.com/your-org/audiosynthese-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CheckoutHandler handles order submission endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	userService     *user.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *CheckoutHandler {
	store := cart.NewRedisStore(redisClient, cfg.Store.CartSessionTTL)
	cartService := cart.NewService(store)
	customerService := customer.NewService(customer.NewRepository(db))

	checkoutService := checkout.NewService(
		cfg,
		log,
		cartService,
		customerService,
		invoice.NewService(db, cfg),
		inventory.NewService(db, cfg),
		checkout.NewAttemptLog(db),
	)

	return &CheckoutHandler{
		checkoutService: checkoutService,
		userService:     user.NewService(db, cfg, log, customerService),
		config:          cfg,
	}
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req checkout.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Your cart is empty",
			"state": "empty_cart",
		})
		return
	}
	req.SessionID = sessionID

	// an authenticated submission is billed to the account's customer record
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		account, err := h.userService.GetAccount(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}
		profile, err := h.userService.Customer(c.Request.Context(), account)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customer profile"})
			return
		}
		req.CustomerID = profile.ID
	}

	confirmation, err := h.checkoutService.Submit(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Your cart is empty",
				"state": "empty_cart",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Order submission failed, please try again",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    confirmation,
	})
}
