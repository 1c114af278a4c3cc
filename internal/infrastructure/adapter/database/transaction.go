package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction at SERIALIZABLE isolation. Under
// this level a transfer losing a race on the same account pair can abort with
// a serialization failure, surfaced as a retryable conflict rather than a
// terminal error; the retried call then re-checks its preconditions against
// the committed state and may fail there with insufficient funds.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	return u.begin(ctx, "SET TRANSACTION ISOLATION LEVEL SERIALIZABLE")
}

// BeginReadOnly starts a read-only transaction at REPEATABLE READ so view
// reads see one consistent snapshot without blocking writers
func (u *UnitOfWork) BeginReadOnly(ctx context.Context) (context.Context, error) {
	return u.begin(ctx, "SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY")
}

func (u *UnitOfWork) begin(ctx context.Context, isolation string) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := tx.Exec(isolation).Error; err != nil {
		tx.Rollback()
		u.logger.Error("Failed to set transaction isolation level", map[string]any{"error": err.Error()})
		return ctx, fmt.Errorf("failed to set transaction isolation level: %w", err)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction in the given context
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction in the given context
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error

	// A transaction that already finished is not an error worth surfacing
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// AccountRepository returns an account repository in the current transaction
func (u *UnitOfWork) AccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// InviteRepository returns an invite repository in the current transaction
func (u *UnitOfWork) InviteRepository(ctx context.Context) persistence.InviteRepository {
	return repository.NewInviteRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// TransferRepository returns a transfer repository in the current transaction
func (u *UnitOfWork) TransferRepository(ctx context.Context) persistence.TransferRepository {
	return repository.NewTransferRepository(u.getDbFromContext(ctx), u.logger)
}

// CardRepository returns a card repository in the current transaction
func (u *UnitOfWork) CardRepository(ctx context.Context) persistence.CardRepository {
	return repository.NewCardRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the transactional handle from context, falling
// back to the base connection outside a transaction
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
