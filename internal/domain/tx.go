package domain

import "context"

// Transactor runs fn inside a single storage transaction.
// Repositories called with the ctx passed to fn take part in that transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
