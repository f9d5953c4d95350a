package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

type CreateTransaction struct {
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionName string
	DateAdded       time.Time

	// CreatedID is populated after a successful Perform.
	CreatedID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer storage.Writer) error {
	if err := validateTransactionName(t.TransactionName); err != nil {
		return err
	}
	if err := validateAmount(t.Amount); err != nil {
		return err
	}
	if err := validateCategoryRef(ctx, writer.Categories(), t.OwnerID, t.CategoryID); err != nil {
		return err
	}

	id, err := writer.Transactions().Insert(ctx, &transaction.Create{
		OwnerID:         t.OwnerID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount,
		TransactionName: t.TransactionName,
		DateAdded:       t.DateAdded,
	})
	if err != nil {
		return err
	}

	t.CreatedID = id
	return nil
}

func (t *CreateTransaction) Collections() []string {
	return []string{storage.CollectionTransactions}
}
