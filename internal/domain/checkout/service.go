// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/cart"
	"github.com/your-org/audiosynthese-backend/internal/domain/customer"
	"github.com/your-org/audiosynthese-backend/internal/domain/invoice"
)

// ErrEmptyCart guards checkout entry: an empty cart is a distinct state the
// storefront renders as such, not a submission error.
var ErrEmptyCart = errors.New("cart is empty")

// CustomerResolver resolves or updates the customer for a submission
type CustomerResolver interface {
	ResolveGuest(ctx context.Context, d customer.GuestDetails) (uint, error)
	SyncProfile(ctx context.Context, customerID uint, d customer.GuestDetails) error
}

// InvoiceStore allocates numbers and persists invoice records
type InvoiceStore interface {
	NextInvoiceNumber(ctx context.Context, at time.Time) (string, error)
	Create(ctx context.Context, inv *invoice.Invoice) error
	CreateLines(ctx context.Context, lines []invoice.InvoiceLine) error
}

// StockAdjuster applies the per-line stock decrement
type StockAdjuster interface {
	DecrementForSale(ctx context.Context, productID uint, colorID *uint, quantity int, invoiceID uint, invoiceNumber string) error
}

// CartAccess reads and clears the session cart
type CartAccess interface {
	Lines(ctx context.Context, sessionID string) []cart.Line
	Clear(ctx context.Context, sessionID string) error
}

// AttemptLog persists submission progress, best-effort
type AttemptLog interface {
	Save(ctx context.Context, a *Attempt) error
}

// Service orchestrates order submission. The pipeline is strictly
// sequential: each step's success is a precondition for the next, and no
// step is undone when a later one fails. A failed submission leaves the cart
// and any already-written records as they are; resubmitting runs the whole
// sequence again and may allocate a new invoice number.
type Service struct {
	config    *config.Config
	log       *logrus.Logger
	cart      CartAccess
	customers CustomerResolver
	invoices  InvoiceStore
	stock     StockAdjuster
	attempts  AttemptLog
	now       func() time.Time
}

// NewService creates a new checkout service
func NewService(cfg *config.Config, log *logrus.Logger, cartAccess CartAccess, customers CustomerResolver, invoices InvoiceStore, stock StockAdjuster, attempts AttemptLog) *Service {
	return &Service{
		config:    cfg,
		log:       log,
		cart:      cartAccess,
		customers: customers,
		invoices:  invoices,
		stock:     stock,
		attempts:  attempts,
		now:       time.Now,
	}
}

// SubmitRequest represents an order submission
type SubmitRequest struct {
	SessionID  string `json:"-"`
	CustomerID uint   `json:"-"` // set for authenticated checkouts
	FullName   string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Note       string `json:"note"`
}

// Confirmation is handed to the storefront after a successful submission
type Confirmation struct {
	InvoiceNumber string `json:"invoice_number"`
	TotalCents    int64  `json:"total_cents"`
}

// Submit runs the order pipeline: resolve customer, allocate invoice number,
// write invoice and lines, decrement stock, clear the cart.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Confirmation, error) {
	lines := s.cart.Lines(ctx, req.SessionID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if req.FullName == "" || req.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	attempt := &Attempt{SessionID: req.SessionID}
	details := customer.GuestDetails{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Note:     req.Note,
	}

	// 1. Resolve or update the customer
	customerID := req.CustomerID
	if customerID != 0 {
		if err := s.customers.SyncProfile(ctx, customerID, details); err != nil {
			return nil, s.fail(ctx, attempt, StepResolveCustomer, err)
		}
	} else {
		id, err := s.customers.ResolveGuest(ctx, details)
		if err != nil {
			return nil, s.fail(ctx, attempt, StepResolveCustomer, err)
		}
		customerID = id
	}
	attempt.CustomerID = &customerID
	s.advance(ctx, attempt, StepResolveCustomer)

	// 2. Allocate the invoice number
	now := s.now().UTC()
	number, err := s.invoices.NextInvoiceNumber(ctx, now)
	if err != nil {
		return nil, s.fail(ctx, attempt, StepAllocateNumber, err)
	}
	attempt.InvoiceNumber = number
	s.advance(ctx, attempt, StepAllocateNumber)

	// 3. Totals from the cart snapshot
	subtotal := cart.TotalCents(lines)
	taxTotal, total := TotalWithTax(subtotal, s.config.Store.VATPercent)

	// 4. Invoice record, due immediately
	inv := &invoice.Invoice{
		InvoiceNumber: number,
		CustomerID:    customerID,
		Status:        invoice.StatusDraft,
		Source:        invoice.SourceWeb,
		Subtotal:      subtotal,
		TaxTotal:      taxTotal,
		Total:         total,
		WebNote:       buildWebNote(req),
		DueDate:       now,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, s.fail(ctx, attempt, StepCreateInvoice, err)
	}
	s.advance(ctx, attempt, StepCreateInvoice)

	// 5. Lines in one batch, prices frozen from the cart
	invoiceLines := make([]invoice.InvoiceLine, 0, len(lines))
	for _, l := range lines {
		invoiceLines = append(invoiceLines, invoice.InvoiceLine{
			InvoiceID:      inv.ID,
			ProductID:      l.ProductID,
			ColorID:        l.ColorID,
			ProductName:    l.Name,
			Qty:            l.Quantity,
			UnitPriceCents: l.PriceCents,
			LineTotal:      l.SubtotalCents(),
			VATRate:        s.config.Store.VATPercent,
		})
	}
	if err := s.invoices.CreateLines(ctx, invoiceLines); err != nil {
		return nil, s.fail(ctx, attempt, StepCreateLines, err)
	}
	s.advance(ctx, attempt, StepCreateLines)

	// 6. Stock decrement plus movement audit, line by line
	for _, l := range lines {
		if err := s.stock.DecrementForSale(ctx, l.ProductID, l.ColorID, l.Quantity, inv.ID, number); err != nil {
			return nil, s.fail(ctx, attempt, StepAdjustStock, err)
		}
	}
	s.advance(ctx, attempt, StepAdjustStock)

	// 7. Only now is the cart cleared
	if err := s.cart.Clear(ctx, req.SessionID); err != nil {
		return nil, s.fail(ctx, attempt, StepClearCart, err)
	}
	s.advance(ctx, attempt, StepClearCart)

	s.log.WithFields(logrus.Fields{
		"invoice_number": number,
		"customer_id":    customerID,
		"total_cents":    total,
		"line_count":     len(lines),
	}).Info("web order submitted")

	return &Confirmation{
		InvoiceNumber: number,
		TotalCents:    total,
	}, nil
}

// buildWebNote concatenates the submitted contact fields, one per line,
// skipping the ones left empty
func buildWebNote(req *SubmitRequest) string {
	parts := []string{fmt.Sprintf("Nom : %s", req.FullName)}
	if req.Email != "" {
		parts = append(parts, fmt.Sprintf("Email : %s", req.Email))
	}
	if req.Phone != "" {
		parts = append(parts, fmt.Sprintf("Tel : %s", req.Phone))
	}
	if req.Address != "" {
		parts = append(parts, fmt.Sprintf("Adresse : %s", req.Address))
	}
	if req.Note != "" {
		parts = append(parts, fmt.Sprintf("Note : %s", req.Note))
	}
	return strings.Join(parts, "\n")
}

func (s *Service) advance(ctx context.Context, attempt *Attempt, step Step) {
	attempt.LastStep = step
	s.record(ctx, attempt)
}

func (s *Service) fail(ctx context.Context, attempt *Attempt, step Step, err error) error {
	attempt.Failed = true
	attempt.ErrorMessage = err.Error()
	s.record(ctx, attempt)

	s.log.WithFields(logrus.Fields{
		"step":           string(step),
		"session_id":     attempt.SessionID,
		"invoice_number": attempt.InvoiceNumber,
	}).WithError(err).Error("checkout step failed")

	return err
}

// record persists attempt progress; the attempt log is advisory and must
// never fail a submission
func (s *Service) record(ctx context.Context, attempt *Attempt) {
	if s.attempts == nil {
		return
	}
	if err := s.attempts.Save(ctx, attempt); err != nil {
		s.log.WithError(err).Warn("failed to record checkout attempt")
	}
}
