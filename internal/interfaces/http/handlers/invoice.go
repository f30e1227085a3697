// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/customer"
	"github.com/your-org/audiosynthese-backend/internal/domain/invoice"
	"github.com/your-org/audiosynthese-backend/internal/domain/user"
	"github.com/your-org/audiosynthese-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// InvoiceHandler handles order history endpoints
type InvoiceHandler struct {
	invoiceService *invoice.Service
	userService    *user.Service
	config         *config.Config
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *InvoiceHandler {
	customerService := customer.NewService(customer.NewRepository(db))
	return &InvoiceHandler{
		invoiceService: invoice.NewService(db, cfg),
		userService:    user.NewService(db, cfg, log, customerService),
		config:         cfg,
	}
}

// ListOrders handles GET /orders
func (h *InvoiceHandler) ListOrders(c *gin.Context) {
	profile, ok := h.customerFromContext(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListByCustomer(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"orders": invoices,
			"count":  len(invoices),
		},
	})
}

// GetOrder handles GET /orders/:id
func (h *InvoiceHandler) GetOrder(c *gin.Context) {
	profile, ok := h.customerFromContext(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	inv, err := h.invoiceService.GetForCustomer(c.Request.Context(), profile.ID, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": inv,
	})
}

// customerFromContext loads the customer record for the authenticated account,
// writing the error response itself when that fails
func (h *InvoiceHandler) customerFromContext(c *gin.Context) (*customer.Customer, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, false
	}

	account, err := h.userService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return nil, false
	}

	profile, err := h.userService.Customer(c.Request.Context(), account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customer profile"})
		return nil, false
	}

	return profile, true
}
