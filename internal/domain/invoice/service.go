// internal/domain/invoice/service.go
package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/audiosynthese-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles invoice persistence and numbering
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new invoice service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// NextInvoiceNumber allocates the next number in the year-scoped web series,
// format WEB-<year>-NNNN. The current maximum is read with a lexicographic
// descending query; zero padding keeps lexicographic and numeric order
// aligned within a year. Two concurrent submissions can read the same
// maximum and produce the same number — the sequence is not atomic and no
// locking is applied.
func (s *Service) NextInvoiceNumber(ctx context.Context, at time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", s.config.Store.InvoicePrefix, at.Year())

	var last Invoice
	err := s.db.WithContext(ctx).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to query last invoice number: %w", err)
	}

	return NextInSeries(prefix, last.InvoiceNumber), nil
}

// Create persists a new invoice record
func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// CreateLines persists the full line set of an invoice in a single batch
func (s *Service) CreateLines(ctx context.Context, lines []InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to create invoice lines: %w", err)
	}
	return nil
}

// ListByCustomer returns a customer's invoices with their lines, newest first
func (s *Service) ListByCustomer(ctx context.Context, customerID uint) ([]Invoice, error) {
	var invoices []Invoice
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// GetForCustomer returns one invoice with lines, scoped to the customer
func (s *Service) GetForCustomer(ctx context.Context, customerID, invoiceID uint) (*Invoice, error) {
	var inv Invoice
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ? AND customer_id = ?", invoiceID, customerID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &inv, nil
}
