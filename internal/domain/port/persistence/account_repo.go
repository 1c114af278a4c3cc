package persistence

import (
	"context"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
)

// AccountRepository defines the Account Store operations used by the engine.
// The Ledger Engine is the only writer of this store.
type AccountRepository interface {
	// GetByID retrieves an account by internal id
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account with the id exists
	// - ErrStoreUnavailable: if the store cannot be reached
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByNumber retrieves an account by its public account number
	GetByNumber(ctx context.Context, accountNumber string) (*entity.Account, error)

	// GetPairForUpdate loads both accounts of a transfer under exclusive row
	// locks. Rows are locked lower account number first so two transfers
	// moving money in opposite directions between the same pair can never
	// form a lock cycle. Must be called inside a transaction.
	GetPairForUpdate(ctx context.Context, senderNumber, receiverNumber string) (sender, receiver *entity.Account, err error)

	// Exists reports whether an account with the public number exists
	Exists(ctx context.Context, accountNumber string) (bool, error)

	// Create inserts a new account row
	//
	// Possible errors:
	// - ErrDuplicateAccountNumber: if the generated number already exists
	// - ErrStoreUnavailable: if the store cannot be reached
	Create(ctx context.Context, account *entity.Account) error

	// Debit decrements the balance as a single conditional atomic update
	// (balance = balance - amount, guarded by balance >= amount in the same
	// statement). A plain read-check-write sequence is forbidden here.
	//
	// Possible errors:
	// - ErrInsufficientFunds: if the guard rejected the decrement
	// - ErrAccountNotFound: if the account does not exist
	Debit(ctx context.Context, accountNumber string, amountCents int64) error

	// Credit increments the balance as a single atomic update
	Credit(ctx context.Context, accountNumber string, amountCents int64) error
}
