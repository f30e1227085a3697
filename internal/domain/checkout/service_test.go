// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/cart"
	"github.com/your-org/audiosynthese-backend/internal/domain/customer"
	"github.com/your-org/audiosynthese-backend/internal/domain/invoice"
)

type stubCart struct {
	lines    []cart.Line
	cleared  bool
	clearErr error
}

func (c *stubCart) Lines(ctx context.Context, sessionID string) []cart.Line {
	return c.lines
}

func (c *stubCart) Clear(ctx context.Context, sessionID string) error {
	if c.clearErr != nil {
		return c.clearErr
	}
	c.cleared = true
	return nil
}

type stubCustomers struct {
	guestID    uint
	guestErr   error
	resolved   []customer.GuestDetails
	syncedIDs  []uint
	syncedWith []customer.GuestDetails
}

func (c *stubCustomers) ResolveGuest(ctx context.Context, d customer.GuestDetails) (uint, error) {
	if c.guestErr != nil {
		return 0, c.guestErr
	}
	c.resolved = append(c.resolved, d)
	return c.guestID, nil
}

func (c *stubCustomers) SyncProfile(ctx context.Context, customerID uint, d customer.GuestDetails) error {
	c.syncedIDs = append(c.syncedIDs, customerID)
	c.syncedWith = append(c.syncedWith, d)
	return nil
}

type stubInvoices struct {
	number     string
	numberErr  error
	createErr  error
	created    *invoice.Invoice
	lines      []invoice.InvoiceLine
	numberCall int
}

func (s *stubInvoices) NextInvoiceNumber(ctx context.Context, at time.Time) (string, error) {
	s.numberCall++
	if s.numberErr != nil {
		return "", s.numberErr
	}
	return s.number, nil
}

func (s *stubInvoices) Create(ctx context.Context, inv *invoice.Invoice) error {
	if s.createErr != nil {
		return s.createErr
	}
	inv.ID = 42
	s.created = inv
	return nil
}

func (s *stubInvoices) CreateLines(ctx context.Context, lines []invoice.InvoiceLine) error {
	s.lines = lines
	return nil
}

type stockCall struct {
	productID uint
	colorID   *uint
	quantity  int
	invoiceID uint
	number    string
}

type stubStock struct {
	calls []stockCall
	err   error
}

func (s *stubStock) DecrementForSale(ctx context.Context, productID uint, colorID *uint, quantity int, invoiceID uint, invoiceNumber string) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, stockCall{productID, colorID, quantity, invoiceID, invoiceNumber})
	return nil
}

type stubAttempts struct {
	last  Attempt
	saves int
}

func (s *stubAttempts) Save(ctx context.Context, a *Attempt) error {
	s.last = *a
	s.saves++
	return nil
}

type checkoutFixture struct {
	svc       *Service
	cart      *stubCart
	customers *stubCustomers
	invoices  *stubInvoices
	stock     *stubStock
	attempts  *stubAttempts
}

func newFixture(lines []cart.Line) *checkoutFixture {
	cfg := &config.Config{}
	cfg.Store.VATPercent = 20
	cfg.Store.InvoicePrefix = "WEB"

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &checkoutFixture{
		cart:      &stubCart{lines: lines},
		customers: &stubCustomers{guestID: 7},
		invoices:  &stubInvoices{number: "WEB-2026-0001"},
		stock:     &stubStock{},
		attempts:  &stubAttempts{},
	}
	f.svc = NewService(cfg, log, f.cart, f.customers, f.invoices, f.stock, f.attempts)
	f.svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	}
	return f
}

func TestSubmitGuestOrder(t *testing.T) {
	lines := []cart.Line{
		{ProductID: 1, Name: "Cable XLR 3m", PriceCents: 10000, Quantity: 2},
	}
	f := newFixture(lines)

	conf, err := f.svc.Submit(context.Background(), &SubmitRequest{
		SessionID: "sess-1",
		FullName:  "Jean Dupont",
		Email:     "x@y.com",
		Phone:     "0601020304",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if conf.InvoiceNumber != "WEB-2026-0001" {
		t.Errorf("invoice number = %q, want WEB-2026-0001", conf.InvoiceNumber)
	}
	if conf.TotalCents != 24000 {
		t.Errorf("total = %d, want 24000", conf.TotalCents)
	}

	if len(f.customers.resolved) != 1 || f.customers.resolved[0].Email != "x@y.com" {
		t.Errorf("guest not resolved with submitted email: %+v", f.customers.resolved)
	}

	inv := f.invoices.created
	if inv == nil {
		t.Fatal("invoice was not created")
	}
	if inv.Subtotal != 20000 || inv.TaxTotal != 4000 || inv.Total != 24000 {
		t.Errorf("invoice totals = %d/%d/%d, want 20000/4000/24000", inv.Subtotal, inv.TaxTotal, inv.Total)
	}
	if inv.CustomerID != 7 {
		t.Errorf("invoice customer = %d, want 7", inv.CustomerID)
	}
	if inv.Status != invoice.StatusDraft || inv.Source != invoice.SourceWeb {
		t.Errorf("invoice status/source = %s/%s", inv.Status, inv.Source)
	}

	if len(f.invoices.lines) != 1 {
		t.Fatalf("invoice lines = %d, want 1", len(f.invoices.lines))
	}
	line := f.invoices.lines[0]
	if line.InvoiceID != 42 || line.Qty != 2 || line.UnitPriceCents != 10000 || line.LineTotal != 20000 {
		t.Errorf("unexpected invoice line: %+v", line)
	}

	if len(f.stock.calls) != 1 {
		t.Fatalf("stock calls = %d, want 1", len(f.stock.calls))
	}
	if sc := f.stock.calls[0]; sc.productID != 1 || sc.quantity != 2 || sc.invoiceID != 42 || sc.number != "WEB-2026-0001" {
		t.Errorf("unexpected stock call: %+v", sc)
	}

	if !f.cart.cleared {
		t.Error("cart was not cleared after success")
	}

	if f.attempts.last.LastStep != StepClearCart || f.attempts.last.Failed {
		t.Errorf("attempt = %+v, want last step clear_cart and not failed", f.attempts.last)
	}
}

func TestSubmitAuthenticatedSyncsProfile(t *testing.T) {
	f := newFixture([]cart.Line{{ProductID: 1, PriceCents: 500, Quantity: 1}})

	_, err := f.svc.Submit(context.Background(), &SubmitRequest{
		SessionID:  "sess-2",
		CustomerID: 31,
		FullName:   "Marie Curie",
		Email:      "marie@example.com",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(f.customers.resolved) != 0 {
		t.Error("guest resolution ran for an authenticated customer")
	}
	if len(f.customers.syncedIDs) != 1 || f.customers.syncedIDs[0] != 31 {
		t.Errorf("synced ids = %v, want [31]", f.customers.syncedIDs)
	}
	if f.invoices.created.CustomerID != 31 {
		t.Errorf("invoice customer = %d, want 31", f.invoices.created.CustomerID)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.Submit(context.Background(), &SubmitRequest{
		SessionID: "sess-3",
		FullName:  "Jean Dupont",
		Email:     "x@y.com",
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("Submit() error = %v, want ErrEmptyCart", err)
	}
	if f.invoices.numberCall != 0 {
		t.Error("invoice number was allocated for an empty cart")
	}
	if f.attempts.saves != 0 {
		t.Error("attempt recorded for an empty cart")
	}
}

func TestSubmitStockFailureKeepsCart(t *testing.T) {
	f := newFixture([]cart.Line{{ProductID: 1, PriceCents: 1000, Quantity: 1}})
	f.stock.err = errors.New("stock update failed")

	_, err := f.svc.Submit(context.Background(), &SubmitRequest{
		SessionID: "sess-4",
		FullName:  "Jean Dupont",
		Email:     "x@y.com",
	})
	if err == nil {
		t.Fatal("Submit() succeeded despite stock failure")
	}

	if f.cart.cleared {
		t.Error("cart was cleared after a failed submission")
	}
	// written records stay put, there is no rollback
	if f.invoices.created == nil {
		t.Error("invoice record should remain after the later failure")
	}
	if !f.attempts.last.Failed || f.attempts.last.LastStep != StepCreateLines {
		t.Errorf("attempt = %+v, want failed after create_lines", f.attempts.last)
	}
}

func TestSubmitNumberAllocationFailure(t *testing.T) {
	f := newFixture([]cart.Line{{ProductID: 1, PriceCents: 1000, Quantity: 1}})
	f.invoices.numberErr = errors.New("query failed")

	_, err := f.svc.Submit(context.Background(), &SubmitRequest{
		SessionID: "sess-5",
		FullName:  "Jean Dupont",
		Email:     "x@y.com",
	})
	if err == nil {
		t.Fatal("Submit() succeeded despite allocation failure")
	}
	if f.invoices.created != nil {
		t.Error("invoice created without a number")
	}
	if f.cart.cleared {
		t.Error("cart cleared after a failed submission")
	}
}

func TestSubmitNilAttemptLog(t *testing.T) {
	f := newFixture([]cart.Line{{ProductID: 1, PriceCents: 1000, Quantity: 1}})
	f.svc.attempts = nil

	if _, err := f.svc.Submit(context.Background(), &SubmitRequest{
		SessionID: "sess-6",
		FullName:  "Jean Dupont",
		Email:     "x@y.com",
	}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

func TestBuildWebNote(t *testing.T) {
	note := buildWebNote(&SubmitRequest{
		FullName: "Jean Dupont",
		Email:    "x@y.com",
		Address:  "1 rue de la Paix",
	})
	want := "Nom : Jean Dupont\nEmail : x@y.com\nAdresse : 1 rue de la Paix"
	if note != want {
		t.Errorf("buildWebNote() = %q, want %q", note, want)
	}
}
