package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

func seedTransactions(t *testing.T, store *storage.Storage, ownerID uuid.UUID, amounts ...int64) {
	t.Helper()
	for _, amount := range amounts {
		writer, err := store.Write(context.Background())
		assert.NoError(t, err)
		_, err = writer.Transactions().Insert(context.Background(), &transaction.Create{
			OwnerID:         ownerID,
			Amount:          decimal.NewFromInt(amount),
			TransactionName: "tx",
			DateAdded:       time.Now(),
		})
		assert.NoError(t, err)
		assert.NoError(t, writer.Commit())
	}
}

// With no configured cap and no explicit limit, every matching row comes
// back and there is no next page.
func TestListTransactions_NoCapByDefault(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewTransactionService(store, 0)
	ownerID := uuid.Must(uuid.NewV4())
	seedTransactions(t, store, ownerID, 1, 2, 3, 4, 5)

	rows, nextCursor, err := svc.ListTransactions(context.Background(), &transaction.Filter{OwnerID: ownerID}, nil)

	assert.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_ConfiguredCap(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewTransactionService(store, 3)
	ownerID := uuid.Must(uuid.NewV4())
	seedTransactions(t, store, ownerID, 1, 2, 3, 4, 5)

	rows, nextCursor, err := svc.ListTransactions(context.Background(), &transaction.Filter{OwnerID: ownerID}, nil)

	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.NotNil(t, nextCursor)
	assert.Equal(t, 3, nextCursor.Position)
	assert.Equal(t, 3, nextCursor.Limit)
	assert.False(t, nextCursor.MaxCreationTime.IsZero())
}

func TestListTransactions_FilterLimitOverridesCap(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewTransactionService(store, 3)
	ownerID := uuid.Must(uuid.NewV4())
	seedTransactions(t, store, ownerID, 1, 2, 3, 4, 5)

	rows, _, err := svc.ListTransactions(context.Background(), &transaction.Filter{
		OwnerID: ownerID,
		Limit:   2,
	}, nil)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestListTransactions_CursorWalksAllPages(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewTransactionService(store, 2)
	ownerID := uuid.Must(uuid.NewV4())
	seedTransactions(t, store, ownerID, 10, 20, 30, 40, 50)

	filter := &transaction.Filter{OwnerID: ownerID}

	var collected []Transaction
	rows, cursor, err := svc.ListTransactions(context.Background(), filter, nil)
	assert.NoError(t, err)
	collected = append(collected, rows...)

	for cursor != nil {
		rows, cursor, err = svc.ListTransactions(context.Background(), filter, cursor)
		assert.NoError(t, err)
		collected = append(collected, rows...)
	}

	assert.Len(t, collected, 5)
	// Sorted by amount ascending across pages.
	for i := 1; i < len(collected); i++ {
		assert.True(t, collected[i-1].Amount.LessThanOrEqual(collected[i].Amount))
	}
}

// Rows created after the first page's cursor was issued stay invisible to
// later pages of that walk.
func TestListTransactions_CursorLocksOutLaterWrites(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewTransactionService(store, 2)
	ownerID := uuid.Must(uuid.NewV4())
	seedTransactions(t, store, ownerID, 10, 20, 30)

	filter := &transaction.Filter{OwnerID: ownerID}
	firstPage, cursor, err := svc.ListTransactions(context.Background(), filter, nil)
	assert.NoError(t, err)
	assert.Len(t, firstPage, 2)
	assert.NotNil(t, cursor)

	// This row lands between the pages amount-wise but is created after the
	// cursor's creation-time bound.
	writer, err := store.Write(context.Background())
	assert.NoError(t, err)
	_, err = writer.Transactions().Insert(context.Background(), &transaction.Create{
		OwnerID:         ownerID,
		Amount:          decimal.NewFromInt(15),
		TransactionName: "late",
		DateAdded:       time.Now(),
	})
	assert.NoError(t, err)
	assert.NoError(t, writer.Commit())

	secondPage, _, err := svc.ListTransactions(context.Background(), filter, cursor)
	assert.NoError(t, err)
	assert.Len(t, secondPage, 1)
	assert.True(t, secondPage[0].Amount.Equal(decimal.NewFromInt(30)))
}

func TestListTransactions_EmptyResult(t *testing.T) {
	store := storage.NewMemoryStorage()
	svc := NewTransactionService(store, 0)

	rows, cursor, err := svc.ListTransactions(context.Background(), &transaction.Filter{
		OwnerID: uuid.Must(uuid.NewV4()),
	}, nil)

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.Nil(t, cursor)
}
