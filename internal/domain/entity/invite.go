package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
)

// InviteCode is a single-use provisioning token. Codes are issued by an
// administrative path and consumed exactly once by Register; the false->true
// transition of IsUsed is atomic with the account creation it authorizes.
type InviteCode struct {
	ID        uint64
	Code      string
	IsUsed    bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// NewInviteCode creates an unused invite code
func NewInviteCode(code string, timeProvider coreport.TimeProvider) (*InviteCode, error) {
	if code == "" {
		return nil, errs.ErrInvalidRequest
	}
	return &InviteCode{
		Code:      code,
		IsUsed:    false,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// MarkUsed records consumption of the code.
// Only the repository's compare-and-set may decide the winner; this is the
// entity-side bookkeeping after the store reported the caller won.
func (i *InviteCode) MarkUsed(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	i.IsUsed = true
	i.UsedAt = &now
}
