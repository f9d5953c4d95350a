package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// UpdateTransaction replaces the set fields of an existing transaction,
// subject to the same validation as creation. Unset fields keep their
// stored values.
type UpdateTransaction struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Update  transaction.Update
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer storage.Writer) error {
	existing, err := writer.Transactions().FindByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != t.OwnerID {
		return NewValidationError("transaction %s does not exist for this user", t.ID)
	}

	if name, set := t.Update.TransactionName.Get(); set {
		if err := validateTransactionName(name); err != nil {
			return err
		}
	}
	if amount, set := t.Update.Amount.Get(); set {
		if err := validateAmount(amount); err != nil {
			return err
		}
	}
	if categoryID, set := t.Update.CategoryID.Get(); set {
		if err := validateCategoryRef(ctx, writer.Categories(), t.OwnerID, categoryID); err != nil {
			return err
		}
	}

	return writer.Transactions().Update(ctx, t.ID, &t.Update)
}

func (t *UpdateTransaction) Collections() []string {
	return []string{storage.CollectionTransactions}
}
