package actions

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

type RenameCategory struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

func (c *RenameCategory) Perform(ctx context.Context, writer storage.Writer) error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("category name must not be blank")
	}

	existing, err := writer.Categories().FindByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != c.OwnerID {
		return NewValidationError("category %s does not exist for this user", c.ID)
	}

	return writer.Categories().Rename(ctx, c.ID, c.Name)
}

func (c *RenameCategory) Collections() []string {
	return []string{storage.CollectionCategories}
}
