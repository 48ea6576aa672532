package wallet

import (
	"context"
	"errors"
	"fmt"
)

// maxAttempts bounds the optimistic-concurrency retry loop. Pathological
// contention fails fast with ErrConcurrencyExhausted instead of spinning.
const maxAttempts = 3

// withRetry re-invokes op from scratch while it fails with ErrVersionConflict,
// up to the attempt budget. There is no delay between attempts: a conflict
// means another writer just committed, so re-reading immediately is useful.
// Any other failure is terminal and propagates on first occurrence. The
// context is only checked between attempts, never mid-commit.
func withRetry(ctx context.Context, attempts int, op func(context.Context) (Wallet, error)) (Wallet, error) {
	for attempt := 1; ; attempt++ {
		w, err := op(ctx)
		if err == nil {
			return w, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return Wallet{}, err
		}
		if attempt >= attempts {
			return Wallet{}, fmt.Errorf("%w: gave up after %d attempts", ErrConcurrencyExhausted, attempts)
		}
		if err := ctx.Err(); err != nil {
			return Wallet{}, err
		}
	}
}
