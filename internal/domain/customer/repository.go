// internal/domain/customer/repository.go
package customer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no customer matches a lookup
var ErrNotFound = errors.New("customer not found")

// Repository abstracts customer record access
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindUnlinkedByEmail(ctx context.Context, email string) (*Customer, error)
	FindByAuthUser(ctx context.Context, authUserID uint) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed customer repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &c, nil
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}
	return &c, nil
}

func (r *gormRepository) FindUnlinkedByEmail(ctx context.Context, email string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).Where("email = ? AND auth_user_id IS NULL", email).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find unlinked customer: %w", err)
	}
	return &c, nil
}

func (r *gormRepository) FindByAuthUser(ctx context.Context, authUserID uint) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).Where("auth_user_id = ?", authUserID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by auth user: %w", err)
	}
	return &c, nil
}

func (r *gormRepository) Create(ctx context.Context, c *Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(&Customer{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}
