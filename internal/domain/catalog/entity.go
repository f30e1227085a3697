// internal/domain/catalog/entity.go
package catalog

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category values for the audio catalog. Vitrine categories are display-only
// (the storefront shows a contact button); orderable categories can be added
// to the cart.
const (
	CategorySpeakers    = "speakers"
	CategoryAmplifiers  = "amplifiers"
	CategoryDAC         = "dac"
	CategoryHeadphones  = "headphones"
	CategoryCables      = "cables"
	CategoryAccessories = "accessories"
)

var categoryLabels = map[string]string{
	CategorySpeakers:    "Enceintes",
	CategoryAmplifiers:  "Amplificateurs",
	CategoryDAC:         "DAC",
	CategoryHeadphones:  "Casques",
	CategoryCables:      "Cables",
	CategoryAccessories: "Accessoires",
}

var orderableCategories = map[string]bool{
	CategoryCables:      true,
	CategoryAccessories: true,
}

// IsOrderable reports whether products in the category can be ordered online
func IsOrderable(category string) bool {
	return orderableCategories[category]
}

// CategoryLabel returns the display label for a category value
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// Categories returns all known category values in display order
func Categories() []string {
	return []string{
		CategorySpeakers,
		CategoryAmplifiers,
		CategoryDAC,
		CategoryHeadphones,
		CategoryCables,
		CategoryAccessories,
	}
}

// Product represents a catalog product
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Brand       string         `gorm:"not null;size:100" json:"brand"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"not null;size:50;index" json:"category"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	StockQty    int            `gorm:"default:0" json:"stock_qty"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsFeatured  bool           `gorm:"default:false" json:"is_featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Colors []ProductColor `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"colors,omitempty"`
}

// ProductColor represents a color variant of a product with its own stock
type ProductColor struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	ColorName string         `gorm:"not null;size:100" json:"color_name"`
	ColorCode string         `gorm:"size:20" json:"color_code"` // hex, for swatches
	StockQty  int            `gorm:"default:0" json:"stock_qty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (ProductColor) TableName() string { return "product_colors" }

// DisplayName returns the brand and model as shown in cart and order lines
func (p *Product) DisplayName() string {
	return strings.TrimSpace(p.Brand + " " + p.Name)
}

// IsOrderable reports whether this product can be added to the cart
func (p *Product) IsOrderable() bool {
	return p.IsActive && IsOrderable(p.Category)
}
