package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tigz/wallet-api/internal/logging"
)

// conflictStore wraps a real store and forces a number of version conflicts
// before letting commits through.
type conflictStore struct {
	Store
	forced  int
	gets    int
	commits int
}

func (s *conflictStore) Get(ctx context.Context, customerID string) (Snapshot, error) {
	s.gets++
	return s.Store.Get(ctx, customerID)
}

func (s *conflictStore) ConditionalCommit(ctx context.Context, commit Commit) (int64, error) {
	s.commits++
	if s.forced > 0 {
		s.forced--
		return 0, ErrVersionConflict
	}
	return s.Store.ConditionalCommit(ctx, commit)
}

func TestRetryRecoversFromConflicts(t *testing.T) {
	store := &conflictStore{Store: NewMemoryStore(), forced: 2}
	svc := NewService(store, testLimits(), logging.Discard())

	w, err := svc.Deposit(context.Background(), "cust-retry", amount("100"))
	if err != nil {
		t.Fatalf("deposit should succeed on the third attempt: %v", err)
	}
	if !w.Balance.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected balance 100, got %s", w.Balance)
	}
	if store.commits != 3 {
		t.Fatalf("expected 3 commit attempts, got %d", store.commits)
	}
}

func TestRetryExhaustsBudget(t *testing.T) {
	store := &conflictStore{Store: NewMemoryStore(), forced: 10}
	svc := NewService(store, testLimits(), logging.Discard())

	_, err := svc.Deposit(context.Background(), "cust-hot", amount("100"))
	if !errors.Is(err, ErrConcurrencyExhausted) {
		t.Fatalf("expected ErrConcurrencyExhausted, got %v", err)
	}
	if errors.Is(err, ErrVersionConflict) {
		t.Fatalf("ErrVersionConflict must not escape the retry loop: %v", err)
	}
	if store.commits != 3 {
		t.Fatalf("expected exactly 3 commit attempts, got %d", store.commits)
	}
}

func TestTerminalFailuresAreNotRetried(t *testing.T) {
	store := &conflictStore{Store: NewMemoryStore()}
	svc := NewService(store, testLimits(), logging.Discard())
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "cust-term", amount("5")); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	store.gets, store.commits = 0, 0

	if _, err := svc.Withdraw(ctx, "cust-term", amount("10")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if store.gets != 1 || store.commits != 0 {
		t.Fatalf("insufficient funds must fail on the first read without committing: gets=%d commits=%d",
			store.gets, store.commits)
	}

	store.gets = 0
	if _, err := svc.Withdraw(ctx, "ghost", amount("10")); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
	if store.gets != 1 {
		t.Fatalf("missing wallet must not be re-read, gets=%d", store.gets)
	}

	store.gets = 0
	if _, err := svc.Withdraw(ctx, "cust-term", amount("0.5")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if store.gets != 0 {
		t.Fatalf("invalid amount must not touch the store, gets=%d", store.gets)
	}
}
