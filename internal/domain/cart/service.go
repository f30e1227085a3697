// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/audiosynthese-backend/internal/domain/catalog"
)

// Service handles cart business logic. Every mutation persists through the
// store and returns the resulting cart so callers can refresh derived state
// without a second read.
type Service struct {
	store Store
}

// NewService creates a new cart service
func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}

// Get retrieves the cart for a session
func (s *Service) Get(ctx context.Context, sessionID string) Cart {
	lines := s.store.Load(ctx, sessionID)
	return s.respond(sessionID, lines)
}

// Lines returns the raw line list for a session
func (s *Service) Lines(ctx context.Context, sessionID string) []Line {
	return s.store.Load(ctx, sessionID)
}

// AddItem adds a product to the cart, merging into an existing line when the
// (product, color) pair is already present. The line snapshots the product's
// display name, price and image at add time.
func (s *Service) AddItem(ctx context.Context, sessionID string, product *catalog.Product, color *catalog.ProductColor, quantity int) (Cart, error) {
	if quantity < 1 {
		return s.Get(ctx, sessionID), fmt.Errorf("quantity must be at least 1")
	}
	if !product.IsOrderable() {
		return s.Get(ctx, sessionID), fmt.Errorf("product '%s' cannot be ordered online", product.DisplayName())
	}

	var colorID *uint
	colorName := ""
	if color != nil {
		id := color.ID
		colorID = &id
		colorName = color.ColorName
	}

	lines := s.store.Load(ctx, sessionID)

	merged := false
	for i := range lines {
		if lines[i].Matches(product.ID, colorID) {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		lines = append(lines, Line{
			ProductID:  product.ID,
			ColorID:    colorID,
			Name:       product.DisplayName(),
			PriceCents: product.PriceCents,
			Quantity:   quantity,
			ImageURL:   product.ImageURL,
			ColorName:  colorName,
			AddedAt:    time.Now().UTC(),
		})
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return s.respond(sessionID, lines), err
	}

	return s.respond(sessionID, lines), nil
}

// SetQuantity overwrites the quantity of an existing line. A quantity of zero
// or less removes the line; an unknown (product, color) pair is a no-op and
// never creates a line.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID uint, colorID *uint, quantity int) (Cart, error) {
	lines := s.store.Load(ctx, sessionID)

	if quantity <= 0 {
		lines = dropLine(lines, productID, colorID)
	} else {
		for i := range lines {
			if lines[i].Matches(productID, colorID) {
				lines[i].Quantity = quantity
				break
			}
		}
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return s.respond(sessionID, lines), err
	}

	return s.respond(sessionID, lines), nil
}

// Remove deletes a line from the cart
func (s *Service) Remove(ctx context.Context, sessionID string, productID uint, colorID *uint) (Cart, error) {
	lines := dropLine(s.store.Load(ctx, sessionID), productID, colorID)

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return s.respond(sessionID, lines), err
	}

	return s.respond(sessionID, lines), nil
}

// Clear removes all lines for a session
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

func dropLine(lines []Line, productID uint, colorID *uint) []Line {
	kept := lines[:0]
	for _, l := range lines {
		if !l.Matches(productID, colorID) {
			kept = append(kept, l)
		}
	}
	return kept
}

func (s *Service) respond(sessionID string, lines []Line) Cart {
	if lines == nil {
		lines = []Line{}
	}
	return Cart{
		SessionID: sessionID,
		Lines:     lines,
		Totals:    ComputeTotals(lines),
	}
}
