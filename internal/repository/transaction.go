package repository

import "context"

// TransactionManager runs fn inside one store transaction. An error returned
// from fn, or a panic, rolls back every write made through the Repositories
// handed to fn; otherwise the transaction commits.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories hands out repositories bound to a single transaction.
type Repositories interface {
	Products() ProductRepository
	Orders() OrderRepository
}
