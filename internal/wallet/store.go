package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is one consistent read of a wallet row. Version is opaque to
// callers and only meaningful when handed back in a Commit.
type Snapshot struct {
	CustomerID string
	Balance    decimal.Decimal
	Version    int64
}

// Entry is the transaction appended alongside a balance write.
type Entry struct {
	Amount    decimal.Decimal
	Type      TransactionType
	Timestamp time.Time
}

// Commit describes one conditional balance transition. ExpectedVersion zero
// means the wallet must still be absent and is created by this commit.
type Commit struct {
	CustomerID      string
	NewBalance      decimal.Decimal
	ExpectedVersion int64
	Entry           Entry
}

// Store is the persistence contract consumed by the balance mutator.
//
// ConditionalCommit must apply the balance write and the transaction append
// in one atomic unit: both land or neither does. When the wallet's stored
// version no longer matches ExpectedVersion (or the wallet was created
// concurrently for a create commit) it returns ErrVersionConflict; any other
// error is a genuine store failure and is never retried.
type Store interface {
	Get(ctx context.Context, customerID string) (Snapshot, error)
	ConditionalCommit(ctx context.Context, commit Commit) (int64, error)
	ListTransactions(ctx context.Context, customerID string, offset, limit int) ([]Transaction, int64, error)
}
