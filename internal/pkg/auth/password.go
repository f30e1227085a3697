// internal/pkg/auth/password.go
package auth

import (
	"fmt"

	"github.com/your-org/audiosynthese-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordManager handles password operations
type PasswordManager struct {
	config *config.Config
}

// NewPasswordManager creates a new password manager
func NewPasswordManager(cfg *config.Config) *PasswordManager {
	return &PasswordManager{
		config: cfg,
	}
}

// HashPassword hashes a password using bcrypt
func (p *PasswordManager) HashPassword(password string) (string, error) {
	if err := p.ValidatePassword(password); err != nil {
		return "", err
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyPassword verifies a password against its hash
func (p *PasswordManager) VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword checks password length against the configured minimum.
// bcrypt ignores input past 72 bytes, so longer passwords are rejected.
func (p *PasswordManager) ValidatePassword(password string) error {
	minLength := p.config.Security.PasswordMinLength
	if minLength <= 0 {
		minLength = 8
	}

	if len(password) < minLength {
		return fmt.Errorf("password must be at least %d characters long", minLength)
	}
	if len(password) > 72 {
		return fmt.Errorf("password must be no more than 72 characters long")
	}

	return nil
}
