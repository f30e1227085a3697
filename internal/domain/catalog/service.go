// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/audiosynthese-backend/internal/config"
	"gorm.io/gorm"
)

// ErrUnknownCategory marks a list request for a category that does not exist
var ErrUnknownCategory = errors.New("unknown category")

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Featured bool   `form:"featured"`
}

// ListProducts retrieves active products, optionally filtered by category or search term
func (s *Service) ListProducts(req *ListRequest) ([]Product, error) {
	if req.Category != "" {
		if _, ok := categoryLabels[req.Category]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, req.Category)
		}
	}

	query := s.db.Where("is_active = ?", true)

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ?", pattern, pattern)
	}

	if req.Featured {
		query = query.Where("is_featured = ?", true)
	}

	var products []Product
	if err := query.Order("brand, name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a single active product with its color variants
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	err := s.db.Preload("Colors", "is_active = ?", true).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetProductBySlug retrieves a single active product by slug
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	var product Product
	err := s.db.Preload("Colors", "is_active = ?", true).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetColor retrieves an active color variant belonging to the given product
func (s *Service) GetColor(productID, colorID uint) (*ProductColor, error) {
	var color ProductColor
	err := s.db.Where("id = ? AND product_id = ? AND is_active = ?", colorID, productID, true).
		First(&color).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product color not found")
		}
		return nil, fmt.Errorf("failed to get product color: %w", err)
	}

	return &color, nil
}
