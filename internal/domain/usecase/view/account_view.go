package view

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/domain/port/persistence"
)

// accountNumberLength matches the public account number format
const accountNumberLength = 10

// HistoryEntry is one transfer as seen from the queried account
type HistoryEntry struct {
	TransferID   uint64
	Counterpart  string // the other account's public number
	Amount       string
	PersonalType entity.PersonalType
	Description  string
	Timestamp    time.Time
}

// CardView is the projection of a linked card; the full number never leaves
// the view builder
type CardView struct {
	MaskedNumber string
	ExpiryMonth  int
	ExpiryYear   int
}

// AccountView is the read-optimized snapshot of an account. It never carries
// the password hash and is assembled from one consistent store snapshot.
type AccountView struct {
	AccountNumber string
	FirstName     string
	LastName      string
	Gender        string
	Balance       string
	Card          *CardView // nil when the account has no linked card
	History       []HistoryEntry
}

// Builder joins the account store, transaction log and card data into
// presentation-ready snapshots. Read-only; it never writes any store.
type Builder struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

// NewBuilder creates a new view builder
func NewBuilder(uow persistence.UnitOfWork, logger coreport.Logger) *Builder {
	return &Builder{uow: uow, logger: logger}
}

// GetView returns the snapshot for an internal id or public account number.
// The whole read runs inside one read-only transaction so the balance and the
// history always come from the same point in time.
func (b *Builder) GetView(ctx context.Context, identifier string) (*AccountView, error) {
	if identifier == "" {
		return nil, errs.ErrInvalidRequest
	}

	txCtx, err := b.uow.BeginReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := b.uow.Rollback(txCtx); err != nil {
			b.logger.Warn("Failed to close read-only transaction", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	account, err := b.resolveAccount(txCtx, identifier)
	if err != nil {
		return nil, err
	}

	result := &AccountView{
		AccountNumber: account.AccountNumber,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		Gender:        account.Gender,
		Balance:       account.FormattedBalance(),
	}

	card, err := b.uow.CardRepository(txCtx).GetByAccountID(txCtx, account.ID)
	switch {
	case err == nil:
		result.Card = &CardView{
			MaskedNumber: card.MaskedNumber(),
			ExpiryMonth:  card.ExpiryMonth,
			ExpiryYear:   card.ExpiryYear,
		}
	case errors.Is(err, errs.ErrNotFound):
		// No linked card, view carries null
	default:
		return nil, err
	}

	records, err := b.uow.TransferRepository(txCtx).ListByAccount(txCtx, account.AccountNumber)
	if err != nil {
		return nil, err
	}

	result.History = make([]HistoryEntry, 0, len(records))
	for _, record := range records {
		direction, err := record.DirectionFor(account.AccountNumber)
		if err != nil {
			return nil, err
		}

		counterpart := record.SenderAccountNumber
		if direction == entity.DirectionSubtraction {
			counterpart = record.ReceiverAccountNumber
		}

		result.History = append(result.History, HistoryEntry{
			TransferID:   record.ID,
			Counterpart:  counterpart,
			Amount:       record.Amount,
			PersonalType: direction,
			Description:  record.Description,
			Timestamp:    record.CreatedAt,
		})
	}

	return result, nil
}

// resolveAccount looks the account up by public number or internal id.
// Public numbers are exactly ten digits; anything else numeric is an id.
func (b *Builder) resolveAccount(ctx context.Context, identifier string) (*entity.Account, error) {
	accounts := b.uow.AccountRepository(ctx)

	if len(identifier) == accountNumberLength {
		return accounts.GetByNumber(ctx, identifier)
	}

	id, err := strconv.ParseUint(identifier, 10, 64)
	if err != nil {
		return nil, errs.ErrAccountNotFound
	}
	return accounts.GetByID(ctx, id)
}
