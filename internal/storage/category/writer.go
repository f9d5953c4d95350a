package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

	query := psql.Insert(
		im.Into("categories", "id", "owner_id", "name"),
		im.Values(psql.Arg(id, create.OwnerID, create.Name)),
	)

	if _, err := bob.Exec(ctx, w.tx, query); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) Rename(ctx context.Context, id uuid.UUID, name string) error {
	query := psql.Update(
		um.Table("categories"),
		um.SetCol("name").ToArg(name),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From("categories"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
