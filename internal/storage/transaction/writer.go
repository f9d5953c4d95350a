package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, create *Create) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	dateAdded := create.DateAdded
	if dateAdded.IsZero() {
		dateAdded = time.Now()
	}

	query := psql.Insert(
		im.Into("transactions", "id", "owner_id", "category_id", "amount", "transaction_name", "date_added"),
		im.Values(psql.Arg(id, create.OwnerID, create.CategoryID, create.Amount, create.TransactionName, dateAdded)),
	)

	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *Update) error {
	if update.IsZero() {
		return nil
	}

	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
	}

	if name, ok := update.TransactionName.Get(); ok {
		queryMods = append(queryMods, um.SetCol("transaction_name").ToArg(name))
	}
	if amount, ok := update.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(amount))
	}
	if categoryID, ok := update.CategoryID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("category_id").ToArg(categoryID))
	}
	if dateAdded, ok := update.DateAdded.Get(); ok {
		queryMods = append(queryMods, um.SetCol("date_added").ToArg(dateAdded))
	}

	queryMods = append(queryMods, um.Where(psql.Quote("id").EQ(psql.Arg(id))))

	_, err := bob.Exec(ctx, w.tx, psql.Update(queryMods...))
	return err
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

// DeleteByCategory removes every transaction referencing categoryID and
// returns the number of rows removed. It runs inside the writer's
// transaction so a category cascade is all-or-nothing.
func (w *Writer) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
