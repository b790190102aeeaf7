package service

import (
	"context"
	"errors"
	"net/mail"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

// CharityInput is the registration and profile form of a charity.
type CharityInput struct {
	OrganizationName   string `json:"organizationName"`
	Description        string `json:"description"`
	WebsiteURL         string `json:"websiteUrl"`
	ContactEmail       string `json:"contactEmail"`
	RegistrationNumber string `json:"registrationNumber"`
	DocumentURL        string `json:"documentUrl"`
}

func (in *CharityInput) normalize() {
	in.OrganizationName = trim(in.OrganizationName)
	in.Description = trim(in.Description)
	in.WebsiteURL = trim(in.WebsiteURL)
	in.ContactEmail = trim(in.ContactEmail)
	in.RegistrationNumber = trim(in.RegistrationNumber)
	in.DocumentURL = trim(in.DocumentURL)
}

func (in CharityInput) validate() error {
	if n := len([]rune(in.OrganizationName)); n < 2 || n > 200 {
		return domain.Validation("organizationName must be 2 to 200 characters")
	}
	if _, err := mail.ParseAddress(in.ContactEmail); err != nil {
		return domain.Validation("contactEmail is invalid")
	}
	if err := validateURL("websiteUrl", in.WebsiteURL); err != nil {
		return err
	}
	return validateURL("documentUrl", in.DocumentURL)
}

// Balance is the money view of a charity.
type Balance struct {
	CharityID        string `json:"charityId"`
	AvailableBalance int64  `json:"availableBalance"`
	TotalReceived    int64  `json:"totalReceived"`
}

// CharityService handles charity registration and verification.
type CharityService struct {
	Base
	charities domain.CharityRepository
}

func NewCharityService(charities domain.CharityRepository, base Base) *CharityService {
	return &CharityService{Base: base, charities: charities}
}

// Register creates the caller's charity in pending verification.
func (s *CharityService) Register(ctx context.Context, actor domain.Actor, in CharityInput) (*domain.Charity, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := &domain.Charity{
		UserID:             actor.UserID,
		OrganizationName:   in.OrganizationName,
		Description:        in.Description,
		WebsiteURL:         in.WebsiteURL,
		ContactEmail:       in.ContactEmail,
		RegistrationNumber: in.RegistrationNumber,
		DocumentURL:        in.DocumentURL,
	}
	if err := s.charities.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(err, "this account already has a charity")
		}
		return nil, err
	}
	s.audit(ctx, actor, "charity.registered", "charity", c.ID, map[string]any{"organizationName": c.OrganizationName})
	return c, nil
}

// Get returns a charity. Unapproved charities are visible to their owner and admins only.
func (s *CharityService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Charity, error) {
	c, err := s.charities.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	if !c.IsApproved() && !actor.IsAdmin() && c.UserID != actor.UserID {
		return nil, domain.NotFound("charity")
	}
	return c, nil
}

// GetByUser returns the caller's charity.
func (s *CharityService) GetByUser(ctx context.Context, actor domain.Actor) (*domain.Charity, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	c, err := s.charities.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	return c, nil
}

// List returns charities. Non-admins only see approved ones.
func (s *CharityService) List(ctx context.Context, actor domain.Actor, filter domain.CharityFilter) ([]domain.Charity, error) {
	if !actor.IsAdmin() {
		filter.Status = domain.VerificationApproved
	}
	return s.charities.List(ctx, filter)
}

// Update edits the owner's charity. Changing registration details sends an
// approved or rejected charity back to pending verification.
func (s *CharityService) Update(ctx context.Context, actor domain.Actor, id string, in CharityInput) (*domain.Charity, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	reverify := in.OrganizationName != c.OrganizationName ||
		in.RegistrationNumber != c.RegistrationNumber ||
		in.DocumentURL != c.DocumentURL

	c.OrganizationName = in.OrganizationName
	c.Description = in.Description
	c.WebsiteURL = in.WebsiteURL
	c.ContactEmail = in.ContactEmail
	c.RegistrationNumber = in.RegistrationNumber
	c.DocumentURL = in.DocumentURL
	if reverify && c.VerificationStatus != domain.VerificationPending {
		c.VerificationStatus = domain.VerificationPending
		c.VerificationNotes = ""
	}
	if err := s.charities.Update(ctx, c); err != nil {
		return nil, lookup(err, "charity")
	}
	s.audit(ctx, actor, "charity.updated", "charity", c.ID, map[string]any{"reverify": reverify})
	return c, nil
}

// Verify approves or rejects a pending charity. Rejections need notes.
func (s *CharityService) Verify(ctx context.Context, actor domain.Actor, id string, approve bool, notes string) (*domain.Charity, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	notes = trim(notes)
	status := domain.VerificationApproved
	if !approve {
		status = domain.VerificationRejected
		if notes == "" {
			return nil, domain.Validation("notes are required when rejecting a charity")
		}
	}
	if _, err := s.charities.GetByID(ctx, id); err != nil {
		return nil, lookup(err, "charity")
	}
	c, err := s.charities.SetVerification(ctx, id, status, notes)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(domain.ErrInvalidTransition, "charity is not pending verification")
		}
		return nil, err
	}
	s.audit(ctx, actor, "charity.verified", "charity", id, map[string]any{"status": status, "notes": notes})
	s.publish(ctx, events.CharityVerified, map[string]any{"charityId": id, "status": status})
	return c, nil
}

// Balance returns the money figures of a charity to its owner or an admin.
func (s *CharityService) Balance(ctx context.Context, actor domain.Actor, id string) (*Balance, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	c, err := s.charities.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	if !actor.IsAdmin() && c.UserID != actor.UserID {
		return nil, domain.Forbidden("only the charity owner can view its balance")
	}
	return &Balance{CharityID: c.ID, AvailableBalance: c.AvailableBalance, TotalReceived: c.TotalReceived}, nil
}

func (s *CharityService) owned(ctx context.Context, actor domain.Actor, id string) (*domain.Charity, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	c, err := s.charities.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	if c.UserID != actor.UserID {
		return nil, domain.Forbidden("you do not own this charity")
	}
	return c, nil
}
