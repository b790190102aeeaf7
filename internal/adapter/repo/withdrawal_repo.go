package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"clearcause/internal/domain"
	"clearcause/internal/infra"
	"clearcause/internal/sqlinline"
)

// WithdrawalRepositoryPG implements domain.WithdrawalRepository.
type WithdrawalRepositoryPG struct {
	db infra.DB
}

func NewWithdrawalRepository(db infra.DB) *WithdrawalRepositoryPG {
	return &WithdrawalRepositoryPG{db: db}
}

// Create debits the charity balance with a conditional update and inserts the
// withdrawal. Two concurrent requests cannot both pass the balance check.
func (r *WithdrawalRepositoryPG) Create(ctx context.Context, w *domain.WithdrawalTransaction) error {
	return r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		tag, err := tx.Exec(ctx, sqlinline.QDebitCharityBalance, w.CharityID, w.Amount)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrInsufficientFunds
		}
		return tx.QueryRow(ctx, sqlinline.QInsertWithdrawal,
			w.CharityID, w.Amount, w.Bank.BankName, w.Bank.AccountNumber, w.Bank.AccountName, w.RequestedBy,
		).Scan(&w.ID, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	})
}

func (r *WithdrawalRepositoryPG) GetByID(ctx context.Context, id string) (*domain.WithdrawalTransaction, error) {
	return scanWithdrawal(r.db.QueryRow(ctx, sqlinline.QSelectWithdrawalByID, id))
}

func (r *WithdrawalRepositoryPG) List(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.WithdrawalTransaction, error) {
	page := filter.Page.Normalize()
	rows, err := r.db.Query(ctx, sqlinline.QListWithdrawals, filter.CharityID, string(filter.Status), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanWithdrawal)
}

// Transition moves the withdrawal from -> to and refunds the amount when the
// target status gives money back.
func (r *WithdrawalRepositoryPG) Transition(ctx context.Context, id string, from, to domain.WithdrawalStatus, failureReason string) (*domain.WithdrawalTransaction, error) {
	var out *domain.WithdrawalTransaction
	err := r.db.InTx(ctx, func(tx infra.SQLExecutor) error {
		w, err := scanWithdrawal(tx.QueryRow(ctx, sqlinline.QTransitionWithdrawal, id, string(from), string(to), failureReason))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidTransition
		}
		if err != nil {
			return err
		}
		if to.Refunds() {
			if _, err := tx.Exec(ctx, sqlinline.QCreditCharityBalance, w.CharityID, w.Amount); err != nil {
				return err
			}
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalTransaction, error) {
	var w domain.WithdrawalTransaction
	if err := row.Scan(
		&w.ID,
		&w.CharityID,
		&w.Amount,
		&w.Status,
		&w.Bank.BankName,
		&w.Bank.AccountNumber,
		&w.Bank.AccountName,
		&w.RequestedBy,
		&w.FailureReason,
		&w.ProcessedAt,
		&w.CreatedAt,
		&w.UpdatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

var _ domain.WithdrawalRepository = (*WithdrawalRepositoryPG)(nil)
