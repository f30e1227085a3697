// internal/domain/inventory/entity.go
package inventory

import (
	"time"
)

// MovementReason represents why stock changed
type MovementReason string

const (
	ReasonWebOrder   MovementReason = "web_order"
	ReasonRestock    MovementReason = "restock"
	ReasonAdjustment MovementReason = "adjustment"
)

// StockMovement is the audit record for every stock change. Web orders write
// one movement per sold line with a negative delta and a reference to the
// invoice, for both variant and non-variant lines.
type StockMovement struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProductID    uint           `gorm:"not null;index" json:"product_id"`
	ColorID      *uint          `gorm:"index" json:"color_id,omitempty"`
	Delta        int            `gorm:"not null" json:"delta"`
	Reason       MovementReason `gorm:"not null;size:50" json:"reason"`
	Note         string         `gorm:"type:text" json:"note"`
	RefInvoiceID *uint          `gorm:"index" json:"ref_invoice_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// TableName overrides the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}
