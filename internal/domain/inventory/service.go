// internal/domain/inventory/service.go
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles stock levels and movement auditing
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DecrementForSale removes sold quantity from stock and records a movement.
// Variant lines decrement the color's stock and recompute the parent
// product's aggregate as the sum over all its variants; non-variant lines
// decrement the product directly. Both paths floor at zero. A product or
// color that no longer exists is skipped without error, matching the
// best-effort nature of the web order flow.
func (s *Service) DecrementForSale(ctx context.Context, productID uint, colorID *uint, quantity int, invoiceID uint, invoiceNumber string) error {
	if colorID != nil {
		if err := s.decrementColor(ctx, productID, *colorID, quantity); err != nil {
			return err
		}
	} else {
		if err := s.decrementProduct(ctx, productID, quantity); err != nil {
			return err
		}
	}

	movement := StockMovement{
		ProductID:    productID,
		ColorID:      colorID,
		Delta:        -quantity,
		Reason:       ReasonWebOrder,
		Note:         fmt.Sprintf("Commande web %s", invoiceNumber),
		RefInvoiceID: &invoiceID,
	}
	if err := s.db.WithContext(ctx).Create(&movement).Error; err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}

	return nil
}

func (s *Service) decrementProduct(ctx context.Context, productID uint, quantity int) error {
	var product catalog.Product
	err := s.db.WithContext(ctx).First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load product %d: %w", productID, err)
	}

	newQty := clampStock(product.StockQty - quantity)
	err = s.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ?", productID).
		Update("stock_qty", newQty).Error
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}

	return nil
}

func (s *Service) decrementColor(ctx context.Context, productID, colorID uint, quantity int) error {
	var color catalog.ProductColor
	err := s.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", colorID, productID).
		First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load product color %d: %w", colorID, err)
	}

	newQty := clampStock(color.StockQty - quantity)
	err = s.db.WithContext(ctx).Model(&catalog.ProductColor{}).
		Where("id = ?", colorID).
		Update("stock_qty", newQty).Error
	if err != nil {
		return fmt.Errorf("failed to update color stock: %w", err)
	}

	// Parent stock is the aggregate over all variants
	var total int64
	err = s.db.WithContext(ctx).Model(&catalog.ProductColor{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(stock_qty), 0)").
		Scan(&total).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate variant stock: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ?", productID).
		Update("stock_qty", total).Error
	if err != nil {
		return fmt.Errorf("failed to update aggregate product stock: %w", err)
	}

	return nil
}

func clampStock(qty int) int {
	if qty < 0 {
		return 0
	}
	return qty
}
