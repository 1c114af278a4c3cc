package migration

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/port/persistence"
	"github.com/google/uuid"
)

// defaultInviteCount is how many invites a fresh development database gets
const defaultInviteCount = 5

// SeedDevelopmentInvites issues a batch of invite codes so a fresh
// development database has codes to register with. Production invites
// come from the invites command instead.
func SeedDevelopmentInvites(ctx context.Context, uow persistence.UnitOfWork, tp coreport.TimeProvider, logger coreport.Logger) ([]string, error) {
	invites := uow.InviteRepository(ctx)

	codes := make([]string, 0, defaultInviteCount)
	for i := 0; i < defaultInviteCount; i++ {
		code := uuid.NewString()

		invite, err := entity.NewInviteCode(code, tp)
		if err != nil {
			return nil, err
		}

		if err := invites.Create(ctx, invite); err != nil {
			// A collision on a fresh uuid is effectively impossible but harmless
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			return nil, err
		}
		codes = append(codes, code)
	}

	logger.Info("Seeded development invite codes", map[string]any{
		"count": len(codes),
	})
	return codes, nil
}
