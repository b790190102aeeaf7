package service

import (
	"context"
	"errors"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

// WithdrawalInput is a charity's payout request.
type WithdrawalInput struct {
	CharityID string             `json:"charityId"`
	Amount    int64              `json:"amount"`
	Bank      domain.BankDetails `json:"bank"`
}

// WithdrawalService moves available balance out to charity bank accounts.
type WithdrawalService struct {
	Base
	withdrawals domain.WithdrawalRepository
	charities   domain.CharityRepository
}

func NewWithdrawalService(withdrawals domain.WithdrawalRepository, charities domain.CharityRepository, base Base) *WithdrawalService {
	return &WithdrawalService{Base: base, withdrawals: withdrawals, charities: charities}
}

// Request debits the balance and records a pending withdrawal.
func (s *WithdrawalService) Request(ctx context.Context, actor domain.Actor, in WithdrawalInput) (*domain.WithdrawalTransaction, error) {
	charity, err := s.ownedCharity(ctx, actor, in.CharityID)
	if err != nil {
		return nil, err
	}
	if !charity.IsApproved() {
		return nil, domain.Forbidden("charity is not verified")
	}
	if in.Amount < domain.MinWithdrawalAmount {
		return nil, domain.Validation("minimum withdrawal amount is %d", domain.MinWithdrawalAmount)
	}
	bank := domain.BankDetails{
		BankName:      trim(in.Bank.BankName),
		AccountNumber: trim(in.Bank.AccountNumber),
		AccountName:   trim(in.Bank.AccountName),
	}
	if bank.BankName == "" || bank.AccountNumber == "" || bank.AccountName == "" {
		return nil, domain.Validation("bank name, account number and account name are required")
	}
	if in.Amount > charity.AvailableBalance {
		return nil, domain.InsufficientFunds("amount exceeds the available balance")
	}
	w := &domain.WithdrawalTransaction{
		CharityID:   charity.ID,
		Amount:      in.Amount,
		Bank:        bank,
		RequestedBy: actor.UserID,
	}
	if err := s.withdrawals.Create(ctx, w); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, domain.InsufficientFunds("amount exceeds the available balance")
		}
		return nil, err
	}
	s.audit(ctx, actor, "withdrawal.requested", "withdrawal", w.ID, map[string]any{"amount": w.Amount, "charityId": w.CharityID})
	s.publish(ctx, events.WithdrawalRequested, map[string]any{"withdrawalId": w.ID, "charityId": w.CharityID, "amount": w.Amount})
	return masked(w), nil
}

// List returns the withdrawals of the caller's charity.
func (s *WithdrawalService) List(ctx context.Context, actor domain.Actor, charityID string, page domain.Page) ([]domain.WithdrawalTransaction, error) {
	if actor.IsAdmin() {
		return s.list(ctx, domain.WithdrawalFilter{CharityID: charityID, Page: page})
	}
	if charityID == "" {
		charity, err := s.charities.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, lookup(err, "charity")
		}
		charityID = charity.ID
	}
	if _, err := s.ownedCharity(ctx, actor, charityID); err != nil {
		return nil, err
	}
	return s.list(ctx, domain.WithdrawalFilter{CharityID: charityID, Page: page})
}

// ListAll returns every withdrawal, optionally by status. Admin only.
func (s *WithdrawalService) ListAll(ctx context.Context, actor domain.Actor, status domain.WithdrawalStatus, page domain.Page) ([]domain.WithdrawalTransaction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.list(ctx, domain.WithdrawalFilter{Status: status, Page: page})
}

// Process moves a withdrawal to processing, completed or failed. Failing
// returns the amount to the charity balance.
func (s *WithdrawalService) Process(ctx context.Context, actor domain.Actor, id string, to domain.WithdrawalStatus, reason string) (*domain.WithdrawalTransaction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if to == domain.WithdrawalCancelled || to == domain.WithdrawalPending {
		return nil, domain.Validation("status must be processing, completed or failed")
	}
	reason = trim(reason)
	if to == domain.WithdrawalFailed && reason == "" {
		return nil, domain.Validation("a failure reason is required")
	}
	w, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "withdrawal")
	}
	return s.transition(ctx, actor, w, to, reason)
}

// Cancel withdraws a pending request and refunds the balance.
func (s *WithdrawalService) Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.WithdrawalTransaction, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	w, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "withdrawal")
	}
	if _, err := s.ownedCharity(ctx, actor, w.CharityID); err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, w, domain.WithdrawalCancelled, "cancelled by charity")
}

func (s *WithdrawalService) transition(ctx context.Context, actor domain.Actor, w *domain.WithdrawalTransaction, to domain.WithdrawalStatus, reason string) (*domain.WithdrawalTransaction, error) {
	from := w.Status
	if !from.CanMoveTo(to) {
		return nil, domain.Conflict(domain.ErrInvalidTransition, "cannot move withdrawal from "+string(from)+" to "+string(to))
	}
	if !to.Refunds() {
		reason = ""
	}
	updated, err := s.withdrawals.Transition(ctx, w.ID, from, to, reason)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, domain.Conflict(domain.ErrInvalidTransition, "withdrawal status changed concurrently")
		}
		return nil, err
	}
	s.audit(ctx, actor, "withdrawal."+string(to), "withdrawal", w.ID, map[string]any{"from": from, "to": to, "amount": w.Amount})
	s.publish(ctx, events.WithdrawalUpdated, map[string]any{"withdrawalId": w.ID, "charityId": w.CharityID, "status": to})
	return masked(updated), nil
}

func (s *WithdrawalService) list(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.WithdrawalTransaction, error) {
	filter.Page = filter.Page.Normalize()
	list, err := s.withdrawals.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Bank = list[i].Bank.Masked()
	}
	return list, nil
}

func (s *WithdrawalService) ownedCharity(ctx context.Context, actor domain.Actor, charityID string) (*domain.Charity, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	charity, err := s.charities.GetByID(ctx, charityID)
	if err != nil {
		return nil, lookup(err, "charity")
	}
	if charity.UserID != actor.UserID {
		return nil, domain.Forbidden("you do not own this charity")
	}
	return charity, nil
}

func masked(w *domain.WithdrawalTransaction) *domain.WithdrawalTransaction {
	out := *w
	out.Bank = w.Bank.Masked()
	return &out
}
