package actions

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/category"
)

type CreateCategory struct {
	OwnerID uuid.UUID
	Name    string

	// CreatedID is populated after a successful Perform.
	CreatedID uuid.UUID
}

func (c *CreateCategory) Perform(ctx context.Context, writer storage.Writer) error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("category name must not be blank")
	}

	id, err := writer.Categories().Insert(ctx, &category.Create{
		OwnerID: c.OwnerID,
		Name:    c.Name,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}

func (c *CreateCategory) Collections() []string {
	return []string{storage.CollectionCategories}
}
