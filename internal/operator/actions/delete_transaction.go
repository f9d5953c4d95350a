package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

type DeleteTransaction struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer storage.Writer) error {
	existing, err := writer.Transactions().FindByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != t.OwnerID {
		return NewValidationError("transaction %s does not exist for this user", t.ID)
	}

	return writer.Transactions().Delete(ctx, t.ID)
}

func (t *DeleteTransaction) Collections() []string {
	return []string{storage.CollectionTransactions}
}
