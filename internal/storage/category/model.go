package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// UncategorizedName is the display name used wherever a transaction's
// category reference is unset or dangling.
const UncategorizedName = "Uncategorized"

// Category is a user-defined label transactions can reference.
type Category struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Create is the input for creating a new category. The ID is generated.
type Create struct {
	OwnerID uuid.UUID
	Name    string
}

// Table defines the read interface for category storage.
//
//go:generate mockery --name Table --output mock_Table.go
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Category, error)
}

// WriteTable extends Table with mutations.
type WriteTable interface {
	Table
	Insert(ctx context.Context, create *Create) (uuid.UUID, error)
	Rename(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
