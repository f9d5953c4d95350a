package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record. The sign of Amount is the
// sole income/expense discriminator: positive is income, negative is
// expense. CategoryID is uuid.Nil for uncategorized transactions.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	OwnerID         uuid.UUID       `db:"owner_id"`
	CategoryID      uuid.UUID       `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionName string          `db:"transaction_name"`
	DateAdded       time.Time       `db:"date_added"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Create is the input for creating a new transaction.
type Create struct {
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionName string
	DateAdded       time.Time // defaults to now if zero
}

// Update carries the replaceable fields of a transaction. Unset fields are
// left untouched, which is why each is an omit.Val rather than a plain value.
type Update struct {
	TransactionName omit.Val[string]
	Amount          omit.Val[decimal.Decimal]
	CategoryID      omit.Val[uuid.UUID]
	DateAdded       omit.Val[time.Time]
}

// IsZero reports whether the update would change nothing.
func (u *Update) IsZero() bool {
	return !u.TransactionName.IsValue() && !u.Amount.IsValue() &&
		!u.CategoryID.IsValue() && !u.DateAdded.IsValue()
}

// Table defines the read interface for transaction storage.
//
//go:generate mockery --name Table --output mock_Table.go
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *Filter) ([]*Transaction, error)
}

// WriteTable extends Table with mutations. Implementations returned from a
// storage.Writer run inside that writer's transaction.
type WriteTable interface {
	Table
	Insert(ctx context.Context, create *Create) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, update *Update) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
