package domain

import "time"

// VerificationStatus is the admin review state of a charity registration.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Charity is an organisation that runs campaigns and receives disbursements.
type Charity struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	OrganizationName   string             `json:"organizationName"`
	Description        string             `json:"description"`
	WebsiteURL         string             `json:"websiteUrl,omitempty"`
	ContactEmail       string             `json:"contactEmail"`
	RegistrationNumber string             `json:"registrationNumber"`
	DocumentURL        string             `json:"documentUrl,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerificationNotes  string             `json:"verificationNotes,omitempty"`
	AvailableBalance   int64              `json:"availableBalance"`
	TotalReceived      int64              `json:"totalReceived"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// IsApproved reports whether an admin verified the charity.
func (c Charity) IsApproved() bool {
	return c.VerificationStatus == VerificationApproved
}

// CharityFilter narrows charity listings.
type CharityFilter struct {
	Status VerificationStatus
	Search string
	Page
}
