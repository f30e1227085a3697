// internal/domain/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/domain/customer"
	"github.com/your-org/audiosynthese-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles auth account business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	log             *logrus.Logger
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	customers       *customer.Service
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger, customers *customer.Service) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		log:             log,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		customers:       customers,
	}
}

// RegisterRequest represents account registration data
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Phone           string `json:"phone"`
}

// LoginRequest represents login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new auth account and its customer record. A customer
// row left behind by an earlier guest order with the same email is claimed
// instead of duplicated.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := User{
		Email:    email,
		Password: hashedPassword,
		FullName: req.FullName,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if _, err := s.customers.LinkOrCreate(ctx, account.ID, email, customer.ProfileFields{
		FullName: req.FullName,
		Phone:    req.Phone,
	}); err != nil {
		// the account exists either way; the customer link is retried on login
		s.log.WithError(err).WithField("user_id", account.ID).Warn("failed to link customer record at registration")
	}

	return s.issueTokens(ctx, &account)
}

// Login authenticates an account
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var account User
	result := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&account)
	if result.Error != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, account.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueTokens(ctx, &account)
}

// RefreshToken generates new tokens from a refresh token
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var account User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", claims.UserID, true).First(&account)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found or inactive")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email, account.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken := refreshToken
	if s.config.JWT.RefreshTokenRotation {
		newRefreshToken, err = s.jwtManager.GenerateRefreshToken(account.ID, account.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to generate refresh token: %w", err)
		}
	}

	account.Password = ""
	return &AuthResponse{
		User:         &account,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetAccount gets an active account by ID
func (s *Service) GetAccount(ctx context.Context, userID uint) (*User, error) {
	var account User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&account)
	if result.Error != nil {
		return nil, fmt.Errorf("user not found")
	}

	account.Password = ""
	return &account, nil
}

// ChangePassword changes the password after verifying the current one
func (s *Service) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	var account User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&account)
	if result.Error != nil {
		return fmt.Errorf("user not found")
	}

	if err := s.passwordManager.VerifyPassword(currentPassword, account.Password); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashedPassword, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(&account).Update("password", hashedPassword).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Customer returns the customer record linked to the account, creating the
// link on first access when a guest row with the account's email exists
func (s *Service) Customer(ctx context.Context, account *User) (*customer.Customer, error) {
	c, err := s.customers.GetByAuthUser(ctx, account.ID)
	if err == nil {
		return c, nil
	}

	return s.customers.LinkOrCreate(ctx, account.ID, account.Email, customer.ProfileFields{
		FullName: account.FullName,
		Phone:    account.Phone,
	})
}

func (s *Service) issueTokens(ctx context.Context, account *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email, account.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	account.LastLoginAt = &now
	s.db.WithContext(ctx).Model(account).Update("last_login_at", now)

	account.Password = ""
	return &AuthResponse{
		User:         account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
