// internal/domain/checkout/entity.go
package checkout

import (
	"time"
)

// Step names one stage of the submission pipeline
type Step string

const (
	StepResolveCustomer Step = "resolve_customer"
	StepAllocateNumber  Step = "allocate_number"
	StepCreateInvoice   Step = "create_invoice"
	StepCreateLines     Step = "create_lines"
	StepAdjustStock     Step = "adjust_stock"
	StepClearCart       Step = "clear_cart"
)

// Attempt records how far a checkout submission got. The pipeline has no
// rollback, so a failed attempt can leave a customer, an invoice or partial
// stock decrements behind; the persisted last step lets a reconciliation job
// find and resolve those partial invoices.
type Attempt struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SessionID     string    `gorm:"size:64;index" json:"session_id"`
	CustomerID    *uint     `gorm:"index" json:"customer_id,omitempty"`
	InvoiceNumber string    `gorm:"size:50" json:"invoice_number"`
	LastStep      Step      `gorm:"size:50" json:"last_step"`
	Failed        bool      `gorm:"default:false" json:"failed"`
	ErrorMessage  string    `gorm:"type:text" json:"error_message"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Attempt) TableName() string {
	return "checkout_attempts"
}
