package view

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func fixtureAccount(t *testing.T) *entity.Account {
	t.Helper()
	tp := newStubTimeProvider()

	account, err := entity.NewAccount("1111111111", "Ada", "Lovelace", "female", "hash", "74.50", tp)
	assert.NoError(t, err)
	account.ID = 7
	return account
}

func TestGetViewAssemblesSnapshot(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	builder := NewBuilder(uow, &noopLogger{})

	account := fixtureAccount(t)
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	records := []*entity.TransferRecord{
		{
			ID:                    2,
			IdempotencyKey:        "key-2",
			SenderAccountNumber:   "1111111111",
			ReceiverAccountNumber: "2222222222",
			Amount:                "25.50",
			AmountInCents:         2550,
			Description:           "Transfer from Ada Lovelace to Alan Turing",
			CreatedAt:             createdAt.Add(time.Minute),
		},
		{
			ID:                    1,
			IdempotencyKey:        "key-1",
			SenderAccountNumber:   "2222222222",
			ReceiverAccountNumber: "1111111111",
			Amount:                "100.00",
			AmountInCents:         10000,
			Description:           "Transfer from Alan Turing to Ada Lovelace",
			CreatedAt:             createdAt,
		},
	}

	uow.accounts.On("GetByNumber", mock.Anything, "1111111111").Return(account, nil)
	uow.cards.On("GetByAccountID", mock.Anything, uint64(7)).Return(&entity.Card{
		ID:          3,
		AccountID:   7,
		CardNumber:  "4000123412341234",
		ExpiryMonth: 12,
		ExpiryYear:  2028,
	}, nil)
	uow.transfers.On("ListByAccount", mock.Anything, "1111111111").Return(records, nil)

	snapshot, err := builder.GetView(ctx, "1111111111")

	assert.NoError(t, err)
	assert.Equal(t, "1111111111", snapshot.AccountNumber)
	assert.Equal(t, "74.50", snapshot.Balance)

	// The full card number never appears in the view
	assert.NotNil(t, snapshot.Card)
	assert.Equal(t, "************1234", snapshot.Card.MaskedNumber)

	assert.Len(t, snapshot.History, 2)

	outgoing := snapshot.History[0]
	assert.Equal(t, entity.DirectionSubtraction, outgoing.PersonalType)
	assert.Equal(t, "2222222222", outgoing.Counterpart)
	assert.Equal(t, "25.50", outgoing.Amount)

	incoming := snapshot.History[1]
	assert.Equal(t, entity.DirectionAddition, incoming.PersonalType)
	assert.Equal(t, "2222222222", incoming.Counterpart)
	assert.Equal(t, "100.00", incoming.Amount)

	// The whole read ran inside one transaction, closed at the end
	assert.Equal(t, 1, uow.begins)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestGetViewWithoutCard(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	builder := NewBuilder(uow, &noopLogger{})

	account := fixtureAccount(t)

	uow.accounts.On("GetByNumber", mock.Anything, "1111111111").Return(account, nil)
	uow.cards.On("GetByAccountID", mock.Anything, uint64(7)).Return(nil, errs.ErrNotFound)
	uow.transfers.On("ListByAccount", mock.Anything, "1111111111").Return([]*entity.TransferRecord{}, nil)

	snapshot, err := builder.GetView(ctx, "1111111111")

	assert.NoError(t, err)
	assert.Nil(t, snapshot.Card)
	assert.Empty(t, snapshot.History)
}

func TestGetViewResolvesInternalID(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	builder := NewBuilder(uow, &noopLogger{})

	account := fixtureAccount(t)

	uow.accounts.On("GetByID", mock.Anything, uint64(7)).Return(account, nil)
	uow.cards.On("GetByAccountID", mock.Anything, uint64(7)).Return(nil, errs.ErrNotFound)
	uow.transfers.On("ListByAccount", mock.Anything, "1111111111").Return([]*entity.TransferRecord{}, nil)

	snapshot, err := builder.GetView(ctx, "7")

	assert.NoError(t, err)
	assert.Equal(t, "1111111111", snapshot.AccountNumber)
	uow.accounts.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
}

func TestGetViewUnknownAccount(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	builder := NewBuilder(uow, &noopLogger{})

	uow.accounts.On("GetByNumber", mock.Anything, "9999999999").Return(nil, errs.ErrAccountNotFound)

	_, err := builder.GetView(ctx, "9999999999")

	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestGetViewRejectsBadIdentifiers(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty identifier", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		builder := NewBuilder(uow, &noopLogger{})

		_, err := builder.GetView(ctx, "")
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Equal(t, 0, uow.begins)
	})

	t.Run("Non-numeric identifier", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		builder := NewBuilder(uow, &noopLogger{})

		_, err := builder.GetView(ctx, "not-a-number")
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})
}
