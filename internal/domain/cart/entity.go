// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// Line represents one orderable product in the session cart, optionally
// scoped to a color variant. Name, price and image are snapshots taken when
// the line was added; they are not re-read from the catalog afterwards.
type Line struct {
	ProductID  uint      `json:"product_id"`
	ColorID    *uint     `json:"color_id,omitempty"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Quantity   int       `json:"qty"`
	ImageURL   string    `json:"image_url"`
	ColorName  string    `json:"color_name,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

// SubtotalCents returns the line total
func (l Line) SubtotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// Matches reports whether the line is keyed by the given product and color.
// A nil color means "no variant selected"; absent and null are equivalent.
func (l Line) Matches(productID uint, colorID *uint) bool {
	return l.ProductID == productID && sameColor(l.ColorID, colorID)
}

func sameColor(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Totals represents computed cart totals. They are derived from the lines on
// every read and never stored.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`      // Sum of line subtotals, in cents
}

// Cart represents the session cart with its derived totals. Line order is
// insertion order and doubles as display order.
type Cart struct {
	SessionID string `json:"session_id"`
	Lines     []Line `json:"lines"`
	Totals    Totals `json:"totals"`
}

// TotalCents sums price*quantity over the lines. Integer arithmetic only.
func TotalCents(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.SubtotalCents()
	}
	return total
}

// Count sums the quantities over the lines
func Count(lines []Line) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// ComputeTotals derives the totals for a line list
func ComputeTotals(lines []Line) Totals {
	return Totals{
		ItemCount:     len(lines),
		TotalQuantity: Count(lines),
		SubTotal:      TotalCents(lines),
	}
}
