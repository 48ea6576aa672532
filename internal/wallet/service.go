package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Service applies balance mutations and serves wallet queries. Mutations go
// through an optimistic read-modify-write cycle: no in-process lock is held
// for a customer, correctness rests on the store's conditional commit plus
// the bounded retry loop.
type Service struct {
	store  Store
	limits Limits
	logger *slog.Logger
}

// NewService builds a wallet service instance.
func NewService(store Store, limits Limits, logger *slog.Logger) *Service {
	return &Service{store: store, limits: limits, logger: logger}
}

// Deposit credits the customer's wallet, creating it with a zero balance on
// the first deposit for an unknown customer.
func (s *Service) Deposit(ctx context.Context, customerID string, amount *decimal.Decimal) (Wallet, error) {
	s.logger.Debug("deposit attempt", slog.String("customer_id", customerID))
	w, err := withRetry(ctx, maxAttempts, func(ctx context.Context) (Wallet, error) {
		return s.apply(ctx, customerID, amount, Credit)
	})
	if err != nil {
		return Wallet{}, err
	}
	s.logger.Debug("deposit committed",
		slog.String("customer_id", customerID),
		slog.String("balance", w.Balance.String()),
	)
	return w, nil
}

// Withdraw debits the customer's wallet. The balance may reach exactly zero
// but never goes negative.
func (s *Service) Withdraw(ctx context.Context, customerID string, amount *decimal.Decimal) (Wallet, error) {
	s.logger.Debug("withdraw attempt", slog.String("customer_id", customerID))
	w, err := withRetry(ctx, maxAttempts, func(ctx context.Context) (Wallet, error) {
		return s.apply(ctx, customerID, amount, Debit)
	})
	if err != nil {
		return Wallet{}, err
	}
	s.logger.Debug("withdraw committed",
		slog.String("customer_id", customerID),
		slog.String("balance", w.Balance.String()),
	)
	return w, nil
}

// GetWallet returns the current wallet view for a customer.
func (s *Service) GetWallet(ctx context.Context, customerID string) (Wallet, error) {
	snap, err := s.store.Get(ctx, customerID)
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{CustomerID: snap.CustomerID, Balance: snap.Balance}, nil
}

// ListTransactions pages through the wallet's history in creation order. A
// page index at or beyond the last page yields an empty item list with
// correct totals rather than an error.
func (s *Service) ListTransactions(ctx context.Context, customerID string, pageIndex, pageSize int) (Page, error) {
	if pageIndex < 0 || pageSize <= 0 {
		return Page{}, fmt.Errorf("%w: page must be >= 0 and size > 0", ErrInvalidPage)
	}

	if _, err := s.store.Get(ctx, customerID); err != nil {
		return Page{}, err
	}

	// An offset that would overflow is past the end of any ledger; clamp it
	// so the store still reports an empty page with correct totals.
	offset := math.MaxInt
	if pageIndex <= math.MaxInt/pageSize {
		offset = pageIndex * pageSize
	}

	items, total, err := s.store.ListTransactions(ctx, customerID, offset, pageSize)
	if err != nil {
		return Page{}, err
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return Page{
		Items:         items,
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// apply runs one read-modify-write cycle. It validates before touching the
// store, computes the new balance from a fresh snapshot, and hands the result
// to the store's conditional commit. A conflicting commit surfaces as
// ErrVersionConflict for the retry loop to absorb.
func (s *Service) apply(ctx context.Context, customerID string, amount *decimal.Decimal, t TransactionType) (Wallet, error) {
	if err := s.limits.Validate(t, amount); err != nil {
		return Wallet{}, err
	}

	snap, err := s.store.Get(ctx, customerID)
	if err != nil {
		if !errors.Is(err, ErrWalletNotFound) {
			return Wallet{}, err
		}
		if t == Debit {
			return Wallet{}, err
		}
		// First deposit: an implicit zero-balance wallet, created by the commit.
		snap = Snapshot{CustomerID: customerID, Balance: decimal.Zero, Version: 0}
	}

	var newBalance decimal.Decimal
	switch t {
	case Credit:
		newBalance = snap.Balance.Add(*amount)
	case Debit:
		if amount.GreaterThan(snap.Balance) {
			return Wallet{}, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, snap.Balance, amount)
		}
		newBalance = snap.Balance.Sub(*amount)
	}

	commit := Commit{
		CustomerID:      customerID,
		NewBalance:      newBalance,
		ExpectedVersion: snap.Version,
		Entry: Entry{
			Amount:    *amount,
			Type:      t,
			Timestamp: time.Now().UTC(),
		},
	}

	if _, err := s.store.ConditionalCommit(ctx, commit); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			s.logger.Debug("commit conflict", slog.String("customer_id", customerID))
		}
		return Wallet{}, err
	}

	return Wallet{CustomerID: customerID, Balance: newBalance}, nil
}
