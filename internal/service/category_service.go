package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/storage"
)

// Category represents a category in the service layer.
type Category struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

// CategoryService handles category read-side business logic.
type CategoryService struct {
	storage *storage.Storage
}

func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// ListCategories returns the owner's categories sorted by name.
func (s *CategoryService) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]Category, error) {
	rows, err := s.storage.Categories.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	converted := make([]Category, len(rows))
	for i, row := range rows {
		converted[i] = Category{
			ID:        row.ID,
			OwnerID:   row.OwnerID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
		}
	}
	return converted, nil
}
