package persistence

import (
	"context"
)

// UnitOfWork coordinates repository operations inside one store transaction
// so a transfer's three phases (precondition check, balance mutations, log
// append) commit as a single atomic unit.
type UnitOfWork interface {
	// Begin starts a new serializable transaction and returns a
	// transactional context
	Begin(ctx context.Context) (context.Context, error)

	// BeginReadOnly starts a read-only repeatable-read transaction used by
	// the view builder so a snapshot never observes a transfer mid-commit
	BeginReadOnly(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// AccountRepository returns an account repository bound to the current transaction
	AccountRepository(ctx context.Context) AccountRepository

	// InviteRepository returns an invite repository bound to the current transaction
	InviteRepository(ctx context.Context) InviteRepository

	// TransferRepository returns a transfer repository bound to the current transaction
	TransferRepository(ctx context.Context) TransferRepository

	// CardRepository returns a card repository bound to the current transaction
	CardRepository(ctx context.Context) CardRepository
}
