package services

import "context"

// Transactor runs fn within a storage-level transaction when the
// backing store supports one. The sql transaction manager satisfies
// this interface; stores without transactions use Passthrough.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Passthrough is a Transactor for backends without transaction
// support. Atomicity then rests on the repository Update contract and
// the engine's own compensation of half-applied transfers.
type Passthrough struct{}

func (Passthrough) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
