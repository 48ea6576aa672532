package wallet

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	rows    map[string]Snapshot
	history map[string][]Transaction
	nextID  int64
}

// NewMemoryStore creates a concurrency-safe in-memory store. It backs the
// dev-mode server and the unit tests, and honours the same conditional-commit
// contract as the Postgres store.
func NewMemoryStore() Store {
	return &memoryStore{
		rows:    make(map[string]Snapshot),
		history: make(map[string][]Transaction),
	}
}

func (s *memoryStore) Get(_ context.Context, customerID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[customerID]
	if !ok {
		return Snapshot{}, ErrWalletNotFound
	}
	return row, nil
}

func (s *memoryStore) ConditionalCommit(_ context.Context, commit Commit) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, exists := s.rows[commit.CustomerID]

	if commit.ExpectedVersion == 0 {
		if exists {
			// Another writer created the wallet first.
			return 0, ErrVersionConflict
		}
	} else if !exists || row.Version != commit.ExpectedVersion {
		return 0, ErrVersionConflict
	}

	newVersion := commit.ExpectedVersion + 1
	s.rows[commit.CustomerID] = Snapshot{
		CustomerID: commit.CustomerID,
		Balance:    commit.NewBalance,
		Version:    newVersion,
	}

	s.nextID++
	s.history[commit.CustomerID] = append(s.history[commit.CustomerID], Transaction{
		ID:         s.nextID,
		CustomerID: commit.CustomerID,
		Amount:     commit.Entry.Amount,
		Type:       commit.Entry.Type,
		Timestamp:  commit.Entry.Timestamp,
	})

	return newVersion, nil
}

func (s *memoryStore) ListTransactions(_ context.Context, customerID string, offset, limit int) ([]Transaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.history[customerID]
	total := int64(len(all))

	if offset < 0 || offset >= len(all) {
		return []Transaction{}, total, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	items := make([]Transaction, end-offset)
	copy(items, all[offset:end])
	return items, total, nil
}
