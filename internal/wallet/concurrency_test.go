package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// TestConcurrentWithdrawalsDrainExactly runs 3 workers withdrawing 100 five
// times each from an initial balance of 1500. Workers resubmit when the retry
// budget is exhausted, as a client would. Every withdrawal must commit exactly
// once: final balance zero, fifteen debit transactions, invariant intact.
func TestConcurrentWithdrawalsDrainExactly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "cust-conc", amount("1500")); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	const (
		workers       = 3
		perWorker     = 5
		submitRetries = 100
	)

	errCh := make(chan error, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				var err error
				for attempt := 0; attempt < submitRetries; attempt++ {
					_, err = svc.Withdraw(ctx, "cust-conc", amount("100"))
					if !errors.Is(err, ErrConcurrencyExhausted) {
						break
					}
				}
				if err != nil {
					errCh <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("withdrawal failed: %v", err)
	}

	w, err := svc.GetWallet(ctx, "cust-conc")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Fatalf("expected final balance 0, got %s", w.Balance)
	}

	page, err := svc.ListTransactions(ctx, "cust-conc", 0, 100)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	debits := 0
	for _, txn := range page.Items {
		if txn.Type == Debit {
			debits++
		}
	}
	if debits != workers*perWorker {
		t.Fatalf("expected %d debit transactions, got %d", workers*perWorker, debits)
	}

	checkLedgerInvariant(t, svc, "cust-conc")
}

// TestConcurrentOverdrawnWithdrawals floods a small balance with more
// withdrawals than it can cover. Exactly k of them may commit; the rest must
// fail with insufficient funds (or exhaust their budget), never overdraw.
func TestConcurrentOverdrawnWithdrawals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "cust-over", amount("300")); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	const attempts = 10 // only 3 can succeed

	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			for {
				_, err = svc.Withdraw(ctx, "cust-over", amount("100"))
				if !errors.Is(err, ErrConcurrencyExhausted) {
					break
				}
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, rejected := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientFunds):
			rejected++
		default:
			t.Errorf("unexpected failure: %v", err)
		}
	}

	if succeeded != 3 {
		t.Fatalf("expected exactly 3 successful withdrawals, got %d", succeeded)
	}
	if rejected != attempts-3 {
		t.Fatalf("expected %d insufficient-funds rejections, got %d", attempts-3, rejected)
	}

	w, err := svc.GetWallet(ctx, "cust-over")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Fatalf("expected drained balance, got %s", w.Balance)
	}

	checkLedgerInvariant(t, svc, "cust-over")
}

// TestConcurrentFirstDeposits races wallet creation. Exactly one commit may
// create the row; the others must land as ordinary credits on top of it.
func TestConcurrentFirstDeposits(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	const depositors = 8

	var wg sync.WaitGroup
	errCh := make(chan error, depositors)
	for i := 0; i < depositors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			for {
				_, err = svc.Deposit(ctx, "cust-fresh", amount("10"))
				if !errors.Is(err, ErrConcurrencyExhausted) {
					break
				}
			}
			if err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("deposit failed: %v", err)
	}

	w, err := svc.GetWallet(ctx, "cust-fresh")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	want := decimal.RequireFromString("80")
	if !w.Balance.Equal(want) {
		t.Fatalf("expected balance %s, got %s", want, w.Balance)
	}

	checkLedgerInvariant(t, svc, "cust-fresh")
}
