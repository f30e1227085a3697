// internal/domain/checkout/attempt_log.go
package checkout

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type gormAttemptLog struct {
	db *gorm.DB
}

// NewAttemptLog creates a gorm-backed attempt log
func NewAttemptLog(db *gorm.DB) AttemptLog {
	return &gormAttemptLog{db: db}
}

// Save inserts the attempt on first call and updates the same row afterwards
func (l *gormAttemptLog) Save(ctx context.Context, a *Attempt) error {
	if err := l.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("failed to save checkout attempt: %w", err)
	}
	return nil
}
