package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/fintrack-server/internal/storage/category"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

func insertTransaction(t *testing.T, store *Store, create *transaction.Create) uuid.UUID {
	t.Helper()
	writer := store.Write()
	id, err := writer.Transactions().Insert(context.Background(), create)
	assert.NoError(t, err)
	assert.NoError(t, writer.Commit())
	return id
}

func insertCategory(t *testing.T, store *Store, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	writer := store.Write()
	id, err := writer.Categories().Insert(context.Background(), &category.Create{
		OwnerID: ownerID,
		Name:    name,
	})
	assert.NoError(t, err)
	assert.NoError(t, writer.Commit())
	return id
}

func TestStore_InsertAndFindByID(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())

	id := insertTransaction(t, store, &transaction.Create{
		OwnerID:         ownerID,
		Amount:          decimal.NewFromInt(42),
		TransactionName: "Paycheck",
		DateAdded:       time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	found, err := store.Transactions().FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "Paycheck", found.TransactionName)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(42)))
}

func TestStore_FindByID_Missing(t *testing.T) {
	store := New()

	found, err := store.Transactions().FindByID(context.Background(), uuid.Must(uuid.NewV4()))
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_List_SortsByAmountAscending(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())

	for _, raw := range []string{"30", "-10", "5"} {
		insertTransaction(t, store, &transaction.Create{
			OwnerID:         ownerID,
			Amount:          decimal.RequireFromString(raw),
			TransactionName: "tx",
			DateAdded:       time.Now(),
		})
	}

	rows, err := store.Transactions().List(context.Background(), &transaction.Filter{OwnerID: ownerID})
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("-10")))
	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("5")))
	assert.True(t, rows[2].Amount.Equal(decimal.RequireFromString("30")))
}

func TestStore_List_LimitAndOffset(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())

	for i := 1; i <= 5; i++ {
		insertTransaction(t, store, &transaction.Create{
			OwnerID:         ownerID,
			Amount:          decimal.NewFromInt(int64(i)),
			TransactionName: "tx",
			DateAdded:       time.Now(),
		})
	}

	rows, err := store.Transactions().List(context.Background(), &transaction.Filter{
		OwnerID: ownerID,
		Limit:   2,
		Offset:  1,
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(2)))
	assert.True(t, rows[1].Amount.Equal(decimal.NewFromInt(3)))
}

func TestStore_Update_OnlySetFields(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())
	id := insertTransaction(t, store, &transaction.Create{
		OwnerID:         ownerID,
		Amount:          decimal.NewFromInt(10),
		TransactionName: "Before",
		DateAdded:       time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	writer := store.Write()
	err := writer.Transactions().Update(context.Background(), id, &transaction.Update{
		TransactionName: omit.From("After"),
	})
	assert.NoError(t, err)
	assert.NoError(t, writer.Commit())

	updated, err := store.Transactions().FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "After", updated.TransactionName)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(10)))
}

func TestStore_WriterReadsItsOwnStagedWrites(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())

	writer := store.Write()
	id, err := writer.Transactions().Insert(context.Background(), &transaction.Create{
		OwnerID:         ownerID,
		Amount:          decimal.NewFromInt(1),
		TransactionName: "staged",
		DateAdded:       time.Now(),
	})
	assert.NoError(t, err)

	// Visible inside the writer, invisible to committed readers.
	staged, err := writer.Transactions().FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.NotNil(t, staged)

	committed, err := store.Transactions().FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, committed)

	assert.NoError(t, writer.Commit())
}

func TestStore_Rollback_DiscardsStagedWrites(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())

	writer := store.Write()
	id, err := writer.Transactions().Insert(context.Background(), &transaction.Create{
		OwnerID:         ownerID,
		Amount:          decimal.NewFromInt(1),
		TransactionName: "discarded",
		DateAdded:       time.Now(),
	})
	assert.NoError(t, err)
	assert.NoError(t, writer.Rollback())

	found, err := store.Transactions().FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

// The cascade has to be all-or-nothing: before Commit, readers see both the
// category and its transactions; after, neither.
func TestStore_CategoryCascadeIsAtomic(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())
	categoryID := insertCategory(t, store, ownerID, "Food")

	for i := 0; i < 3; i++ {
		insertTransaction(t, store, &transaction.Create{
			OwnerID:         ownerID,
			CategoryID:      categoryID,
			Amount:          decimal.NewFromInt(-5),
			TransactionName: "groceries",
			DateAdded:       time.Now(),
		})
	}
	insertTransaction(t, store, &transaction.Create{
		OwnerID:         ownerID,
		Amount:          decimal.NewFromInt(-7),
		TransactionName: "other",
		DateAdded:       time.Now(),
	})

	writer := store.Write()
	removed, err := writer.Transactions().DeleteByCategory(context.Background(), categoryID)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, writer.Categories().Delete(context.Background(), categoryID))

	// Not yet committed: readers still see everything.
	rows, err := store.Transactions().List(context.Background(), &transaction.Filter{OwnerID: ownerID})
	assert.NoError(t, err)
	assert.Len(t, rows, 4)

	assert.NoError(t, writer.Commit())

	rows, err = store.Transactions().List(context.Background(), &transaction.Filter{OwnerID: ownerID})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "other", rows[0].TransactionName)

	gone, err := store.Categories().FindByID(context.Background(), categoryID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStore_ListCategories_SortedByName(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())

	insertCategory(t, store, ownerID, "Transport")
	insertCategory(t, store, ownerID, "Food")
	insertCategory(t, store, uuid.Must(uuid.NewV4()), "OtherOwner")

	rows, err := store.Categories().List(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Food", rows[0].Name)
	assert.Equal(t, "Transport", rows[1].Name)
}

func TestStore_RenameCategory(t *testing.T) {
	store := New()
	ownerID := uuid.Must(uuid.NewV4())
	categoryID := insertCategory(t, store, ownerID, "Fod")

	writer := store.Write()
	assert.NoError(t, writer.Categories().Rename(context.Background(), categoryID, "Food"))
	assert.NoError(t, writer.Commit())

	renamed, err := store.Categories().FindByID(context.Background(), categoryID)
	assert.NoError(t, err)
	assert.Equal(t, "Food", renamed.Name)
}
