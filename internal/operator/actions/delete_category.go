package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

// DeleteCategory removes a category and every transaction referencing it in
// one storage transaction, so readers never observe a partial cascade.
type DeleteCategory struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	// DeletedTransactions is populated after a successful Perform.
	DeletedTransactions int64
}

func (c *DeleteCategory) Perform(ctx context.Context, writer storage.Writer) error {
	existing, err := writer.Categories().FindByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != c.OwnerID {
		return NewValidationError("category %s does not exist for this user", c.ID)
	}

	removed, err := writer.Transactions().DeleteByCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	c.DeletedTransactions = removed

	return writer.Categories().Delete(ctx, c.ID)
}

func (c *DeleteCategory) Collections() []string {
	return []string{storage.CollectionTransactions, storage.CollectionCategories}
}
