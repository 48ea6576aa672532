package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists wallets and their transaction history in PostgreSQL.
// The version column backs the conditional commit: writers never hold a row
// lock across the read-modify-write cycle, they re-check the version at
// commit time instead.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed wallet store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get fetches the current wallet snapshot for a customer.
func (s *PostgresStore) Get(ctx context.Context, customerID string) (Snapshot, error) {
	row := s.db.QueryRow(ctx, `SELECT balance, version FROM wallets WHERE customer_id = $1`, customerID)

	snap := Snapshot{CustomerID: customerID}
	if err := row.Scan(&snap.Balance, &snap.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, ErrWalletNotFound
		}
		return Snapshot{}, fmt.Errorf("read wallet %s: %w", customerID, err)
	}
	return snap, nil
}

// ConditionalCommit writes the new balance and appends the transaction in a
// single database transaction. The balance write is a compare-and-swap on the
// version column; zero affected rows means another writer won the race.
func (s *PostgresStore) ConditionalCommit(ctx context.Context, commit Commit) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	newVersion := commit.ExpectedVersion + 1

	if commit.ExpectedVersion == 0 {
		cmd, err := tx.Exec(ctx, `INSERT INTO wallets (customer_id, balance, version)
            VALUES ($1, $2, $3) ON CONFLICT (customer_id) DO NOTHING`,
			commit.CustomerID, commit.NewBalance, newVersion)
		if err != nil {
			return 0, fmt.Errorf("create wallet %s: %w", commit.CustomerID, err)
		}
		if cmd.RowsAffected() == 0 {
			return 0, ErrVersionConflict
		}
	} else {
		cmd, err := tx.Exec(ctx, `UPDATE wallets SET balance = $2, version = version + 1
            WHERE customer_id = $1 AND version = $3`,
			commit.CustomerID, commit.NewBalance, commit.ExpectedVersion)
		if err != nil {
			return 0, fmt.Errorf("update wallet %s: %w", commit.CustomerID, err)
		}
		if cmd.RowsAffected() == 0 {
			return 0, ErrVersionConflict
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transactions (customer_id, amount, type, created_at)
        VALUES ($1, $2, $3, $4)`,
		commit.CustomerID, commit.Entry.Amount, string(commit.Entry.Type), commit.Entry.Timestamp.UTC()); err != nil {
		return 0, fmt.Errorf("append transaction for %s: %w", commit.CustomerID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit wallet %s: %w", commit.CustomerID, err)
	}

	return newVersion, nil
}

// ListTransactions returns one page of a wallet's history in creation order.
func (s *PostgresStore) ListTransactions(ctx context.Context, customerID string, offset, limit int) ([]Transaction, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE customer_id = $1`, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions for %s: %w", customerID, err)
	}

	rows, err := s.db.Query(ctx, `SELECT id, customer_id, amount, type, created_at
        FROM transactions WHERE customer_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions for %s: %w", customerID, err)
	}
	defer rows.Close()

	items := make([]Transaction, 0, limit)
	for rows.Next() {
		var (
			txn Transaction
			typ string
		)
		if err := rows.Scan(&txn.ID, &txn.CustomerID, &txn.Amount, &typ, &txn.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		txn.Type = TransactionType(typ)
		txn.Timestamp = txn.Timestamp.UTC()
		items = append(items, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list transactions for %s: %w", customerID, err)
	}

	return items, total, nil
}
