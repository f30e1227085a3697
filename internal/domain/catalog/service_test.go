// internal/domain/catalog/service_test.go
package catalog

import (
	"errors"
	"testing"
)

func TestListProducts_UnknownCategory(t *testing.T) {
	// category validation happens before any query is built
	svc := NewService(nil, nil)

	_, err := svc.ListProducts(&ListRequest{Category: "turntables"})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("ListProducts error = %v, want ErrUnknownCategory", err)
	}
}

func TestCategoryVocabulary(t *testing.T) {
	orderable := map[string]bool{
		CategorySpeakers:    false,
		CategoryAmplifiers:  false,
		CategoryDAC:         false,
		CategoryHeadphones:  false,
		CategoryCables:      true,
		CategoryAccessories: true,
	}

	if len(Categories()) != len(orderable) {
		t.Fatalf("expected %d categories, got %d", len(orderable), len(Categories()))
	}

	for category, want := range orderable {
		if IsOrderable(category) != want {
			t.Errorf("IsOrderable(%s) = %v, want %v", category, !want, want)
		}
		if CategoryLabel(category) == category {
			t.Errorf("category %s has no display label", category)
		}
	}
}
