package domain

import "time"

// DonationStatus is the payment state of a donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
	DonationRefunded  DonationStatus = "refunded"
)

// MinDonationAmount is the smallest accepted donation.
const MinDonationAmount = 1

// Donation represents a donor contribution to a campaign.
type Donation struct {
	ID               string         `json:"id"`
	UserID           *string        `json:"userId,omitempty"`
	CampaignID       string         `json:"campaignId"`
	Amount           int64          `json:"amount"`
	Status           DonationStatus `json:"status"`
	PaymentMethod    string         `json:"paymentMethod"`
	PaymentReference string         `json:"paymentReference,omitempty"`
	IsAnonymous      bool           `json:"isAnonymous"`
	Message          string         `json:"message,omitempty"`
	DonorCountry     string         `json:"donorCountry,omitempty"`
	DonorName        string         `json:"donorName,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// Public hides the donor identity of anonymous donations.
func (d Donation) Public() Donation {
	if d.IsAnonymous {
		d.UserID = nil
		d.DonorName = "Anonymous"
	}
	d.PaymentReference = ""
	return d
}
