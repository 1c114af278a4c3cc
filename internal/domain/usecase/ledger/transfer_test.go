package ledger

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/account-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTransferCommitsAtomically(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, tp := newTestEngine(uow)

	sender := mustAccount("1111111111", "Ada", "Lovelace", "100.00", tp)
	receiver := mustAccount("2222222222", "Alan", "Turing", "50.00", tp)

	uow.transfers.On("ExistsByIdempotencyKey", mock.Anything, "key-1").Return(false, nil)
	uow.accounts.On("GetPairForUpdate", mock.Anything, "1111111111", "2222222222").Return(sender, receiver, nil)
	uow.accounts.On("Debit", mock.Anything, "1111111111", int64(2550)).Return(nil)
	uow.accounts.On("Credit", mock.Anything, "2222222222", int64(2550)).Return(nil)
	uow.transfers.On("Append", mock.Anything, mock.MatchedBy(func(r *entity.TransferRecord) bool {
		return r.IdempotencyKey == "key-1" &&
			r.SenderAccountNumber == "1111111111" &&
			r.ReceiverAccountNumber == "2222222222" &&
			r.AmountInCents == 2550
	})).Return(nil)

	record, err := engine.Transfer(ctx, TransferRequest{
		SenderNumber:   "1111111111",
		ReceiverNumber: "2222222222",
		Amount:         "25.50",
		IdempotencyKey: "key-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "25.50", record.Amount)
	assert.Equal(t, "Transfer from Ada Lovelace to Alan Turing", record.Description)
	assert.Equal(t, tp.now, record.CreatedAt)

	assert.Equal(t, 1, uow.begins)
	assert.Equal(t, 1, uow.commits)
	assert.Equal(t, 0, uow.rollbacks)
	uow.accounts.AssertExpectations(t)
	uow.transfers.AssertExpectations(t)
}

func TestTransferInsufficientFundsIsANoOp(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, tp := newTestEngine(uow)

	sender := mustAccount("1111111111", "Ada", "Lovelace", "5.00", tp)
	receiver := mustAccount("2222222222", "Alan", "Turing", "50.00", tp)

	uow.transfers.On("ExistsByIdempotencyKey", mock.Anything, "key-1").Return(false, nil)
	uow.accounts.On("GetPairForUpdate", mock.Anything, "1111111111", "2222222222").Return(sender, receiver, nil)

	_, err := engine.Transfer(ctx, TransferRequest{
		SenderNumber:   "1111111111",
		ReceiverNumber: "2222222222",
		Amount:         "5.01",
		IdempotencyKey: "key-1",
	})

	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

	// Neither side may have been touched and nothing may have committed
	uow.accounts.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	uow.accounts.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	uow.transfers.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	assert.Equal(t, 0, uow.commits)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestTransferDuplicateKeyReturnsPriorRecord(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, _ := newTestEngine(uow)

	prior := &entity.TransferRecord{
		ID:                    42,
		IdempotencyKey:        "key-1",
		SenderAccountNumber:   "1111111111",
		ReceiverAccountNumber: "2222222222",
		Amount:                "25.50",
		AmountInCents:         2550,
	}

	uow.transfers.On("ExistsByIdempotencyKey", mock.Anything, "key-1").Return(true, nil)
	uow.transfers.On("GetByIdempotencyKey", mock.Anything, "key-1").Return(prior, nil)

	record, err := engine.Transfer(ctx, TransferRequest{
		SenderNumber:   "1111111111",
		ReceiverNumber: "2222222222",
		Amount:         "25.50",
		IdempotencyKey: "key-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, prior, record)

	// The fast path never opens a transaction or takes locks
	assert.Equal(t, 0, uow.begins)
	uow.accounts.AssertNotCalled(t, "GetPairForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferLostAppendRaceResolvesToWinner(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, tp := newTestEngine(uow)

	sender := mustAccount("1111111111", "Ada", "Lovelace", "100.00", tp)
	receiver := mustAccount("2222222222", "Alan", "Turing", "50.00", tp)

	winner := &entity.TransferRecord{
		ID:                    42,
		IdempotencyKey:        "key-1",
		SenderAccountNumber:   "1111111111",
		ReceiverAccountNumber: "2222222222",
		Amount:                "25.50",
		AmountInCents:         2550,
	}

	// Unseen at the pre-check, but a concurrent retry commits first and the
	// append loses on the unique index
	uow.transfers.On("ExistsByIdempotencyKey", mock.Anything, "key-1").Return(false, nil).Once()
	uow.accounts.On("GetPairForUpdate", mock.Anything, "1111111111", "2222222222").Return(sender, receiver, nil)
	uow.accounts.On("Debit", mock.Anything, "1111111111", int64(2550)).Return(nil)
	uow.accounts.On("Credit", mock.Anything, "2222222222", int64(2550)).Return(nil)
	uow.transfers.On("Append", mock.Anything, mock.Anything).Return(errs.ErrConflict)
	uow.transfers.On("ExistsByIdempotencyKey", mock.Anything, "key-1").Return(true, nil).Once()
	uow.transfers.On("GetByIdempotencyKey", mock.Anything, "key-1").Return(winner, nil)

	record, err := engine.Transfer(ctx, TransferRequest{
		SenderNumber:   "1111111111",
		ReceiverNumber: "2222222222",
		Amount:         "25.50",
		IdempotencyKey: "key-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, winner, record)
	assert.Equal(t, 1, uow.rollbacks)
	assert.Equal(t, 0, uow.commits)
}

func TestTransferValidationFailuresNeverTouchTheStore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		req           TransferRequest
		expectedError error
	}{
		{
			name: "Self transfer",
			req: TransferRequest{
				SenderNumber:   "1111111111",
				ReceiverNumber: "1111111111",
				Amount:         "10.00",
				IdempotencyKey: "key-1",
			},
			expectedError: errs.ErrSelfTransfer,
		},
		{
			name: "Missing idempotency key",
			req: TransferRequest{
				SenderNumber:   "1111111111",
				ReceiverNumber: "2222222222",
				Amount:         "10.00",
			},
			expectedError: errs.ErrMissingIdempotencyKey,
		},
		{
			name: "Zero amount",
			req: TransferRequest{
				SenderNumber:   "1111111111",
				ReceiverNumber: "2222222222",
				Amount:         "0",
				IdempotencyKey: "key-1",
			},
			expectedError: errs.ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := newFakeUnitOfWork()
			engine, _ := newTestEngine(uow)

			_, err := engine.Transfer(ctx, tt.req)

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Equal(t, 0, uow.begins)
			uow.transfers.AssertNotCalled(t, "ExistsByIdempotencyKey", mock.Anything, mock.Anything)
		})
	}
}

func TestTransferGuardRejectionRollsBack(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, tp := newTestEngine(uow)

	sender := mustAccount("1111111111", "Ada", "Lovelace", "100.00", tp)
	receiver := mustAccount("2222222222", "Alan", "Turing", "50.00", tp)

	uow.transfers.On("ExistsByIdempotencyKey", mock.Anything, "key-1").Return(false, nil)
	uow.accounts.On("GetPairForUpdate", mock.Anything, "1111111111", "2222222222").Return(sender, receiver, nil)
	// The conditional update itself rejects, e.g. a concurrent writer drained
	// the balance between snapshot and update
	uow.accounts.On("Debit", mock.Anything, "1111111111", int64(2550)).
		Return(errs.NewInsufficientFundsError("1111111111", "25.50", "0.00"))

	_, err := engine.Transfer(ctx, TransferRequest{
		SenderNumber:   "1111111111",
		ReceiverNumber: "2222222222",
		Amount:         "25.50",
		IdempotencyKey: "key-1",
	})

	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	uow.accounts.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, uow.rollbacks)
	assert.Equal(t, 0, uow.commits)
}

func TestTransferCommitFailure(t *testing.T) {
	ctx := context.Background()
	uow := newFakeUnitOfWork()
	engine, tp := newTestEngine(uow)
	uow.commitErr = errs.ErrStoreUnavailable

	sender := mustAccount("1111111111", "Ada", "Lovelace", "100.00", tp)
	receiver := mustAccount("2222222222", "Alan", "Turing", "50.00", tp)

	uow.transfers.On("ExistsByIdempotencyKey", mock.Anything, "key-1").Return(false, nil)
	uow.accounts.On("GetPairForUpdate", mock.Anything, "1111111111", "2222222222").Return(sender, receiver, nil)
	uow.accounts.On("Debit", mock.Anything, "1111111111", int64(2550)).Return(nil)
	uow.accounts.On("Credit", mock.Anything, "2222222222", int64(2550)).Return(nil)
	uow.transfers.On("Append", mock.Anything, mock.Anything).Return(nil)

	_, err := engine.Transfer(ctx, TransferRequest{
		SenderNumber:   "1111111111",
		ReceiverNumber: "2222222222",
		Amount:         "25.50",
		IdempotencyKey: "key-1",
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	var transferErr *errs.TransferError
	assert.ErrorAs(t, err, &transferErr)
	assert.Equal(t, "key-1", transferErr.IdempotencyKey)
}
