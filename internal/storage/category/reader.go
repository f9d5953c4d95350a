package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"id", "owner_id", "name", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[*Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) List(ctx context.Context, ownerID uuid.UUID) ([]*Category, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)

	return bob.All(ctx, r.exec, query, scan.StructMapper[*Category]())
}
