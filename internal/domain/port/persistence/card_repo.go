package persistence

import (
	"context"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
)

// CardRepository reads the auxiliary card data joined into account views
type CardRepository interface {
	// GetByAccountID returns the card linked to the account, or
	// ErrNotFound when the account has none
	GetByAccountID(ctx context.Context, accountID uint64) (*entity.Card, error)
}
