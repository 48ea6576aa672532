package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType marks the direction of a balance change.
type TransactionType string

const (
	// Credit increases the wallet balance.
	Credit TransactionType = "CREDIT"
	// Debit decreases the wallet balance.
	Debit TransactionType = "DEBIT"
)

// Wallet is the caller-facing view of a customer's funds. The storage version
// is deliberately not part of this view.
type Wallet struct {
	CustomerID string
	Balance    decimal.Decimal
}

// Transaction documents one committed balance change. Records are append-only
// and never mutated after commit.
type Transaction struct {
	ID         int64
	CustomerID string
	Amount     decimal.Decimal
	Type       TransactionType
	Timestamp  time.Time
}

// Page is one slice of a wallet's transaction history.
type Page struct {
	Items         []Transaction
	PageIndex     int
	PageSize      int
	TotalElements int64
	TotalPages    int64
}
