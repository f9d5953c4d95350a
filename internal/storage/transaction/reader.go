package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"id", "owner_id", "category_id", "amount", "transaction_name", "date_added", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// List composes and runs a filtered query. Predicates are layered in a fixed
// order on top of the owner-scoped base query, and the sort is fixed so the
// result order is stable however the query is recomposed.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(filter.OwnerID))),
	}

	switch filter.Type {
	case TypeIncome:
		queryMods = append(queryMods, sm.Where(psql.Quote("amount").GT(psql.Arg(0))))
	case TypeExpenses:
		queryMods = append(queryMods, sm.Where(psql.Quote("amount").LT(psql.Arg(0))))
	}

	if filter.StartDate != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("date_added").GTE(psql.Arg(*filter.StartDate))))
	}
	if end := filter.NormalizedEndDate(); end != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("date_added").LTE(psql.Arg(*end))))
	}

	for _, cond := range AmountConditions(filter.MinAmount, filter.MaxAmount) {
		switch cond.Op {
		case AmountGTE:
			queryMods = append(queryMods, sm.Where(psql.Quote("amount").GTE(psql.Arg(cond.Value))))
		case AmountLTE:
			queryMods = append(queryMods, sm.Where(psql.Quote("amount").LTE(psql.Arg(cond.Value))))
		}
	}

	if filter.CategoryID != uuid.Nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(filter.CategoryID))))
	}

	if filter.MaxCreationTime != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}

	queryMods = append(queryMods,
		sm.OrderBy("amount").Asc(),
		sm.OrderBy("date_added").Desc(),
		sm.OrderBy("id").Desc(),
	)

	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}
