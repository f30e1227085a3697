// internal/domain/customer/service.go
package customer

import (
	"context"
	"fmt"
)

// webCustomerNote marks customers created from a guest web order
const webCustomerNote = "Client cree via le site web"

// Service handles customer resolution and profile logic
type Service struct {
	repo Repository
}

// NewService creates a new customer service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// GuestDetails carries the contact fields a guest submits at checkout
type GuestDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Note     string `json:"note"`
}

// ProfileFields carries the account page's full profile form. UpdateProfile
// persists every field as submitted, empty values included; the account page
// always posts the complete form state.
type ProfileFields struct {
	FullName              string `json:"full_name"`
	Phone                 string `json:"phone"`
	CompanyName           string `json:"company_name"`
	BillingAddress        string `json:"billing_address"`
	ShippingAddress       string `json:"shipping_address"`
	ShippingSameAsBilling *bool  `json:"shipping_same_as_billing"`
}

// ResolveGuest returns the id of the customer matching the submitted email,
// creating a new record when none exists. Lookup failures are treated as
// "not found" and fall through to creation; only a failure of the creation
// itself is surfaced.
func (s *Service) ResolveGuest(ctx context.Context, d GuestDetails) (uint, error) {
	if d.Email != "" {
		if existing, err := s.repo.FindByEmail(ctx, d.Email); err == nil {
			return existing.ID, nil
		}
	}

	c := &Customer{
		FullName:       d.FullName,
		Email:          d.Email,
		Phone:          d.Phone,
		BillingAddress: d.Address,
		Notes:          webCustomerNote,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return 0, err
	}

	return c.ID, nil
}

// LinkOrCreate binds a customer record to a freshly registered auth account.
// An unlinked customer with the same email (a previous guest order) is
// claimed and updated in place; otherwise a new customer is created. Never
// produces a duplicate row for the same guest.
func (s *Service) LinkOrCreate(ctx context.Context, authUserID uint, email string, fields ProfileFields) (*Customer, error) {
	shippingAddress, sameAsBilling := resolveShipping(fields)

	existing, err := s.repo.FindUnlinkedByEmail(ctx, email)
	if err == nil {
		updates := map[string]interface{}{
			"auth_user_id":             authUserID,
			"full_name":                fields.FullName,
			"phone":                    fields.Phone,
			"company_name":             fields.CompanyName,
			"billing_address":          fields.BillingAddress,
			"shipping_address":         shippingAddress,
			"shipping_same_as_billing": sameAsBilling,
		}
		if err := s.repo.Update(ctx, existing.ID, updates); err != nil {
			return nil, err
		}
		return s.repo.FindByID(ctx, existing.ID)
	}

	c := &Customer{
		AuthUserID:            &authUserID,
		FullName:              fields.FullName,
		Email:                 email,
		Phone:                 fields.Phone,
		CompanyName:           fields.CompanyName,
		BillingAddress:        fields.BillingAddress,
		ShippingAddress:       shippingAddress,
		ShippingSameAsBilling: sameAsBilling,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// SyncProfile persists the submitted contact fields that differ from the
// stored profile. Called before an authenticated checkout proceeds; a guest
// form field left empty is not treated as a change.
func (s *Service) SyncProfile(ctx context.Context, customerID uint, d GuestDetails) error {
	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if d.FullName != "" && d.FullName != c.FullName {
		updates["full_name"] = d.FullName
	}
	if d.Phone != "" && d.Phone != c.Phone {
		updates["phone"] = d.Phone
	}
	if d.Address != "" && d.Address != c.BillingAddress {
		updates["billing_address"] = d.Address
	}

	if len(updates) == 0 {
		return nil
	}

	return s.repo.Update(ctx, customerID, updates)
}

// UpdateProfile applies account-page profile changes and returns the updated
// customer. When shipping is flagged same-as-billing the shipping address is
// collapsed onto the billing address.
func (s *Service) UpdateProfile(ctx context.Context, customerID uint, fields ProfileFields) (*Customer, error) {
	shippingAddress, sameAsBilling := resolveShipping(fields)

	updates := map[string]interface{}{
		"full_name":                fields.FullName,
		"phone":                    fields.Phone,
		"company_name":             fields.CompanyName,
		"billing_address":          fields.BillingAddress,
		"shipping_address":         shippingAddress,
		"shipping_same_as_billing": sameAsBilling,
	}
	if err := s.repo.Update(ctx, customerID, updates); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, customerID)
}

// GetByAuthUser returns the customer linked to an auth account
func (s *Service) GetByAuthUser(ctx context.Context, authUserID uint) (*Customer, error) {
	return s.repo.FindByAuthUser(ctx, authUserID)
}

// GetByID returns a customer by id
func (s *Service) GetByID(ctx context.Context, id uint) (*Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer %d: %w", id, err)
	}
	return c, nil
}

func resolveShipping(fields ProfileFields) (string, bool) {
	sameAsBilling := true
	if fields.ShippingSameAsBilling != nil {
		sameAsBilling = *fields.ShippingSameAsBilling
	}
	if sameAsBilling {
		return fields.BillingAddress, sameAsBilling
	}
	return fields.ShippingAddress, sameAsBilling
}
