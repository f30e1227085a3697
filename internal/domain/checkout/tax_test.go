// internal/domain/checkout/tax_test.go
package checkout

import "testing"

func TestTaxCents(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		rate     int64
		want     int64
	}{
		{"round hundred euros", 10000, 20, 2000},
		{"uneven subtotal", 2550, 20, 510},
		{"single cent", 1, 20, 0},
		{"three cents", 3, 20, 1},
		{"zero subtotal", 0, 20, 0},
		{"zero rate", 10000, 0, 0},
		{"half cent rounds up", 2, 25, 1},
		{"reduced rate", 10000, 10, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaxCents(tt.subtotal, tt.rate); got != tt.want {
				t.Errorf("TaxCents(%d, %v) = %d, want %d", tt.subtotal, tt.rate, got, tt.want)
			}
		})
	}
}

func TestTotalWithTax(t *testing.T) {
	subtotal := int64(10000)
	tax, total := TotalWithTax(subtotal, 20)
	if tax != 2000 {
		t.Errorf("tax = %d, want 2000", tax)
	}
	if total != 12000 {
		t.Errorf("total = %d, want 12000", total)
	}
	if total != subtotal+tax {
		t.Errorf("total %d does not equal subtotal %d + tax %d", total, subtotal, tax)
	}
}
