package persistence

import (
	"context"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
)

// TransferRepository defines the append-only Transaction Log.
// Records are created once by Transfer and never updated or deleted.
type TransferRepository interface {
	// Append inserts a new transfer record. The idempotency key carries a
	// unique index; a duplicate-key failure means an operation with the
	// same key already committed.
	//
	// Possible errors:
	// - ErrConflict: if the same idempotency key was committed concurrently
	// - ErrStoreUnavailable: if the store cannot be reached
	Append(ctx context.Context, record *entity.TransferRecord) error

	// GetByIdempotencyKey retrieves the committed record for a key
	//
	// Possible errors:
	// - ErrTransferNotFound: if no record with the key exists
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.TransferRecord, error)

	// ExistsByIdempotencyKey reports whether a record with the key exists
	ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error)

	// ListByAccount returns every transfer the account participates in,
	// most recent first
	ListByAccount(ctx context.Context, accountNumber string) ([]*entity.TransferRecord, error)
}
