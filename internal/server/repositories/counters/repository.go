package counters

import "context"

type Repository interface {
	// Increment atomically bumps the counter for category, creating the row
	// at 1 if absent, and returns the new value. Two concurrent calls for
	// the same category never observe the same value.
	Increment(ctx context.Context, category string) (int64, error)
}
