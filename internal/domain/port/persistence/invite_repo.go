package persistence

import (
	"context"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
)

// InviteRepository defines the Invite Registry. TryConsume is the only
// mutating primitive on is_used; no other component may write it.
type InviteRepository interface {
	// TryConsume atomically flips is_used false->true for the code and
	// reports whether this caller won. Implemented as one conditional
	// update, never a read followed by a separate write. Under N concurrent
	// calls with the same code exactly one returns true.
	TryConsume(ctx context.Context, code string) (bool, error)

	// Exists reports whether a code row exists at all, used to distinguish
	// "unknown code" from "already used" after a lost TryConsume
	Exists(ctx context.Context, code string) (bool, error)

	// Create inserts a fresh unused code (administrative issuance path)
	Create(ctx context.Context, invite *entity.InviteCode) error
}
