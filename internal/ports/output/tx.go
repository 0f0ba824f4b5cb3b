package output

import "context"

// Transactor runs fn as one atomic unit against the store.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
