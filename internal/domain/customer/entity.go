// internal/domain/customer/entity.go
package customer

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a storefront customer. A customer may exist without a
// linked auth account: guest checkouts create unlinked records which are
// claimed later when the guest registers with the same email.
type Customer struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	AuthUserID            *uint          `gorm:"index" json:"auth_user_id,omitempty"`
	FullName              string         `gorm:"not null;size:255" json:"full_name"`
	Email                 string         `gorm:"size:255;index" json:"email"`
	Phone                 string         `gorm:"size:50" json:"phone"`
	CompanyName           string         `gorm:"size:255" json:"company_name"`
	BillingAddress        string         `gorm:"type:text" json:"billing_address"`
	ShippingAddress       string         `gorm:"type:text" json:"shipping_address"`
	ShippingSameAsBilling bool           `gorm:"default:true" json:"shipping_same_as_billing"`
	Notes                 string         `gorm:"type:text" json:"notes"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}

// IsLinked reports whether the customer is bound to an auth account
func (c *Customer) IsLinked() bool {
	return c.AuthUserID != nil
}
