// internal/domain/invoice/entity.go
package invoice

import (
	"time"

	"gorm.io/gorm"
)

// Status represents the invoice lifecycle status
type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
	StatusVoid  Status = "void"
)

// SourceWeb marks invoices created by the storefront
const SourceWeb = "web"

// Invoice represents an invoice record. Web orders create draft invoices;
// the back office moves them through the rest of the lifecycle.
type Invoice struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	InvoiceNumber string         `gorm:"uniqueIndex;not null;size:50" json:"invoice_number"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"`
	Status        Status         `gorm:"not null;default:'draft';size:20" json:"status"`
	Source        string         `gorm:"not null;default:'web';size:20" json:"source"`
	Subtotal      int64          `gorm:"not null" json:"subtotal"`  // In cents, before tax
	TaxTotal      int64          `gorm:"not null" json:"tax_total"` // In cents
	Total         int64          `gorm:"not null" json:"total"`     // In cents, tax included
	WebNote       string         `gorm:"type:text" json:"web_note"`
	DueDate       time.Time      `gorm:"type:date" json:"due_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lines,omitempty"`
}

// InvoiceLine represents one sold line. Unit price is frozen from the cart
// snapshot at submission time; the line set of an invoice is written once, in
// a single batch, and never partially updated.
type InvoiceLine struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InvoiceID      uint      `gorm:"not null;index" json:"invoice_id"`
	ProductID      uint      `gorm:"not null;index" json:"product_id"`
	ColorID        *uint     `gorm:"index" json:"color_id,omitempty"`
	ProductName    string    `gorm:"size:255" json:"product_name"`
	Qty            int       `gorm:"not null" json:"qty"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	DiscountCents  int64     `gorm:"default:0" json:"discount_cents"`
	LineTotal      int64     `gorm:"not null" json:"line_total"`
	VATRate        int64     `gorm:"default:20" json:"vat_rate"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName overrides
func (Invoice) TableName() string     { return "invoices" }
func (InvoiceLine) TableName() string { return "invoice_lines" }
