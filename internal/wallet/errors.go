package wallet

import "errors"

var (
	// ErrInvalidAmount occurs when a requested amount is missing or outside the
	// configured range for the operation.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrWalletNotFound occurs when a debit or query targets a customer with no wallet.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInsufficientFunds occurs when a debit exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidPage occurs when a history query carries a negative page index
	// or a non-positive page size.
	ErrInvalidPage = errors.New("invalid page request")

	// ErrVersionConflict signals that another writer changed the wallet between
	// the snapshot read and the conditional commit. It is the only retryable
	// failure and never escapes the retry coordinator in normal operation.
	ErrVersionConflict = errors.New("version conflict")

	// ErrConcurrencyExhausted is surfaced after the retry budget is spent while
	// still conflicting. Callers may safely resubmit the request.
	ErrConcurrencyExhausted = errors.New("concurrency retries exhausted")
)
