package domain

import (
	"strings"
	"time"
)

// MinWithdrawalAmount is the smallest withdrawal a charity may request.
const MinWithdrawalAmount = 100

// WithdrawalStatus is the payout state of a withdrawal.
type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalFailed     WithdrawalStatus = "failed"
	WithdrawalCancelled  WithdrawalStatus = "cancelled"
)

var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalPending:    {WithdrawalProcessing, WithdrawalFailed, WithdrawalCancelled},
	WithdrawalProcessing: {WithdrawalCompleted, WithdrawalFailed},
}

// CanMoveTo reports whether the withdrawal may move to next.
func (s WithdrawalStatus) CanMoveTo(next WithdrawalStatus) bool {
	for _, n := range withdrawalTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Refunds reports whether entering this status returns the amount to the balance.
func (s WithdrawalStatus) Refunds() bool {
	return s == WithdrawalFailed || s == WithdrawalCancelled
}

// BankDetails is the payout destination of a withdrawal.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// Masked returns a copy with all but the last four account digits hidden.
func (b BankDetails) Masked() BankDetails {
	n := len(b.AccountNumber)
	if n > 4 {
		b.AccountNumber = strings.Repeat("*", n-4) + b.AccountNumber[n-4:]
	}
	return b
}

// WithdrawalTransaction moves funds from a charity's available balance to its bank.
type WithdrawalTransaction struct {
	ID            string           `json:"id"`
	CharityID     string           `json:"charityId"`
	Amount        int64            `json:"amount"`
	Status        WithdrawalStatus `json:"status"`
	Bank          BankDetails      `json:"bank"`
	RequestedBy   string           `json:"requestedBy"`
	FailureReason string           `json:"failureReason,omitempty"`
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// WithdrawalFilter narrows withdrawal listings.
type WithdrawalFilter struct {
	CharityID string
	Status    WithdrawalStatus
	Page
}
