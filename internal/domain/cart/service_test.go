package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/your-org/audiosynthese-backend/internal/domain/catalog"
)

type memoryStore struct {
	carts   map[string][]Line
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: make(map[string][]Line)}
}

func (m *memoryStore) Load(_ context.Context, sessionID string) []Line {
	return m.carts[sessionID]
}

func (m *memoryStore) Save(_ context.Context, sessionID string, lines []Line) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[sessionID] = lines
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

func orderableProduct(id uint, priceCents int64) *catalog.Product {
	return &catalog.Product{
		ID:         id,
		Brand:      "Atoll",
		Name:       "Cable HP-200",
		Category:   catalog.CategoryCables,
		PriceCents: priceCents,
		IsActive:   true,
	}
}

func TestAddItem_MergesSameProductAndColor(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	product := orderableProduct(1, 10000)
	color := &catalog.ProductColor{ID: 7, ProductID: 1, ColorName: "Noir", IsActive: true}

	if _, err := svc.AddItem(ctx, "s1", product, color, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	result, err := svc.AddItem(ctx, "s1", product, color, 3)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(result.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(result.Lines))
	}
	if result.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", result.Lines[0].Quantity)
	}
}

func TestAddItem_DifferentColorCreatesSeparateLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	product := orderableProduct(1, 10000)
	black := &catalog.ProductColor{ID: 7, ProductID: 1, ColorName: "Noir"}
	silver := &catalog.ProductColor{ID: 8, ProductID: 1, ColorName: "Argent"}

	if _, err := svc.AddItem(ctx, "s1", product, black, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	result, err := svc.AddItem(ctx, "s1", product, silver, 1)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(result.Lines))
	}
}

func TestAddItem_NilColorNormalized(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	product := orderableProduct(1, 2500)

	if _, err := svc.AddItem(ctx, "s1", product, nil, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	result, err := svc.AddItem(ctx, "s1", product, nil, 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(result.Lines) != 1 || result.Lines[0].Quantity != 3 {
		t.Fatalf("expected single merged line with quantity 3, got %+v", result.Lines)
	}
}

func TestAddItem_RejectsVitrineCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	product := &catalog.Product{
		ID:         9,
		Brand:      "Focal",
		Name:       "Aria 906",
		Category:   catalog.CategorySpeakers,
		PriceCents: 89900,
		IsActive:   true,
	}

	if _, err := svc.AddItem(ctx, "s1", product, nil, 1); err == nil {
		t.Fatal("expected error for vitrine category product")
	}
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	product := orderableProduct(1, 10000)
	if _, err := svc.AddItem(ctx, "s1", product, nil, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	result, err := svc.SetQuantity(ctx, "s1", 1, nil, 0)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if len(result.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(result.Lines))
	}

	// Line must stay absent on subsequent reads
	if got := svc.Get(ctx, "s1"); len(got.Lines) != 0 {
		t.Fatalf("expected line absent after removal, got %+v", got.Lines)
	}
}

func TestSetQuantity_NegativeRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	product := orderableProduct(1, 10000)
	if _, err := svc.AddItem(ctx, "s1", product, nil, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	result, err := svc.SetQuantity(ctx, "s1", 1, nil, -3)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if len(result.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(result.Lines))
	}
}

func TestSetQuantity_UnknownPairIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	product := orderableProduct(1, 10000)
	if _, err := svc.AddItem(ctx, "s1", product, nil, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	result, err := svc.SetQuantity(ctx, "s1", 99, nil, 4)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(result.Lines))
	}
	if result.Lines[0].ProductID != 1 || result.Lines[0].Quantity != 2 {
		t.Fatalf("existing line must be untouched, got %+v", result.Lines[0])
	}
}

func TestRemove_DropsOnlyMatchingLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())

	cable := orderableProduct(1, 10000)
	stand := &catalog.Product{
		ID: 2, Brand: "NorStone", Name: "Esse", Category: catalog.CategoryAccessories,
		PriceCents: 19900, IsActive: true,
	}

	if _, err := svc.AddItem(ctx, "s1", cable, nil, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", stand, nil, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	result, err := svc.Remove(ctx, "s1", 1, nil)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(result.Lines) != 1 || result.Lines[0].ProductID != 2 {
		t.Fatalf("expected only product 2 to remain, got %+v", result.Lines)
	}
}

func TestTotals_ConsistentWithLines(t *testing.T) {
	lines := []Line{
		{ProductID: 1, PriceCents: 10000, Quantity: 2},
		{ProductID: 2, PriceCents: 2550, Quantity: 3},
	}

	if got := TotalCents(lines); got != 27650 {
		t.Fatalf("TotalCents = %d, want 27650", got)
	}
	if got := Count(lines); got != 5 {
		t.Fatalf("Count = %d, want 5", got)
	}

	totals := ComputeTotals(lines)
	if totals.SubTotal != 27650 || totals.TotalQuantity != 5 || totals.ItemCount != 2 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestTotals_EmptyCart(t *testing.T) {
	if got := TotalCents(nil); got != 0 {
		t.Fatalf("TotalCents(empty) = %d, want 0", got)
	}
	if got := Count(nil); got != 0 {
		t.Fatalf("Count(empty) = %d, want 0", got)
	}
}

func TestAddItem_SaveFailureSurfaced(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.saveErr = errors.New("redis unavailable")
	svc := NewService(store)

	if _, err := svc.AddItem(ctx, "s1", orderableProduct(1, 10000), nil, 1); err == nil {
		t.Fatal("expected save error to surface")
	}
}
