package ledger

import (
	"context"

	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/port/persistence"
)

// Engine is the Account Ledger Engine. It orchestrates transfers and account
// provisioning as atomic operations against the account store, invite
// registry and transaction log, and it is the only writer of all three.
type Engine struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	validator   *Validator
	idempotency *IdempotencyHandler
	numbers     *AccountNumberGenerator
	clock       *appendClock
}

// NewEngine creates a ledger engine bound to the given unit of work.
// The store handle's lifecycle is owned by the hosting process, not the
// engine; the engine only borrows it per operation.
func NewEngine(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		validator:    NewValidator(),
		idempotency:  NewIdempotencyHandler(uow.TransferRepository(context.Background())),
		numbers:      NewAccountNumberGenerator(),
		clock:        &appendClock{},
	}
}

// rollback discards the transaction, logging instead of propagating failures
// so the original error stays visible to the caller
func (e *Engine) rollback(ctx context.Context) {
	if err := e.uow.Rollback(ctx); err != nil {
		e.logger.Warn("Rollback failed", map[string]any{
			"error": err.Error(),
		})
	}
}
