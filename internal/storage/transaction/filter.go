package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type narrows a filter to one side of the amount sign.
type Type string

const (
	TypeAll      Type = "all"
	TypeIncome   Type = "income"
	TypeExpenses Type = "expenses"
)

// Filter specifies the predicates of a composed transaction query. Every
// field except OwnerID is optional; unset predicates impose no constraint
// and set predicates are combined with AND. Composition always starts from
// the owner-scoped base query, so two Filters are never merged — callers
// build a fresh Filter whenever criteria change.
type Filter struct {
	OwnerID uuid.UUID

	// Type defaults to TypeAll when empty.
	Type Type

	// StartDate and EndDate bound date_added inclusively. EndDate is
	// normalized to 23:59:59 of its calendar day before use.
	StartDate *time.Time
	EndDate   *time.Time

	// MinAmount and MaxAmount are sign-aware, not a plain numeric range.
	// See AmountConditions for the exact rule table.
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal

	// CategoryID of uuid.Nil means no category constraint.
	CategoryID uuid.UUID

	// MaxCreationTime locks in an upper bound on created_at so paginated
	// reads stay consistent across pages.
	MaxCreationTime *time.Time

	// Limit caps the result set. 0 means no cap. Offset skips rows of the
	// sorted result, used by cursor pagination.
	Limit  int
	Offset int
}

// AmountOp is a comparison against the signed amount.
type AmountOp int8

const (
	AmountGTE AmountOp = iota
	AmountLTE
)

// AmountCondition is one resolved amount constraint.
type AmountCondition struct {
	Op    AmountOp
	Value decimal.Decimal
}

// AmountConditions resolves the sign-aware min/max bounds into concrete
// comparisons. The bounds describe "how negative/how positive", not an
// interval:
//
//	min > 0  -> amount >= min
//	min < 0  -> amount <= min
//	min == 0 -> skipped
//	max > 0  -> amount <= max
//	max < 0  -> amount >= max
//	max == 0 -> skipped
//
// A zero min or max imposing no constraint matches the historical behavior
// of the budget view and is kept as-is.
func AmountConditions(min, max *decimal.Decimal) []AmountCondition {
	var conditions []AmountCondition

	if min != nil && !min.IsZero() {
		if min.Sign() > 0 {
			conditions = append(conditions, AmountCondition{Op: AmountGTE, Value: *min})
		} else {
			conditions = append(conditions, AmountCondition{Op: AmountLTE, Value: *min})
		}
	}

	if max != nil && !max.IsZero() {
		if max.Sign() > 0 {
			conditions = append(conditions, AmountCondition{Op: AmountLTE, Value: *max})
		} else {
			conditions = append(conditions, AmountCondition{Op: AmountGTE, Value: *max})
		}
	}

	return conditions
}

// EndOfDay moves t to 23:59:59 of its calendar day, preserving the location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// NormalizedEndDate returns the inclusive upper date bound, or nil when unset.
func (f *Filter) NormalizedEndDate() *time.Time {
	if f.EndDate == nil {
		return nil
	}
	end := EndOfDay(*f.EndDate)
	return &end
}

// Matches reports whether tx satisfies every set predicate. It is the
// in-memory twin of the SQL composition in Reader.List and must stay
// behaviorally identical to it.
func (f *Filter) Matches(tx *Transaction) bool {
	if tx.OwnerID != f.OwnerID {
		return false
	}

	switch f.Type {
	case TypeIncome:
		if tx.Amount.Sign() <= 0 {
			return false
		}
	case TypeExpenses:
		if tx.Amount.Sign() >= 0 {
			return false
		}
	}

	if f.StartDate != nil && tx.DateAdded.Before(*f.StartDate) {
		return false
	}
	if end := f.NormalizedEndDate(); end != nil && tx.DateAdded.After(*end) {
		return false
	}

	for _, cond := range AmountConditions(f.MinAmount, f.MaxAmount) {
		switch cond.Op {
		case AmountGTE:
			if tx.Amount.LessThan(cond.Value) {
				return false
			}
		case AmountLTE:
			if tx.Amount.GreaterThan(cond.Value) {
				return false
			}
		}
	}

	if f.CategoryID != uuid.Nil && tx.CategoryID != f.CategoryID {
		return false
	}

	if f.MaxCreationTime != nil && tx.CreatedAt.After(*f.MaxCreationTime) {
		return false
	}

	return true
}

// Less orders two transactions the way composed queries do: by amount
// ascending, then date_added descending, then ID descending so the order is
// stable across recomposition.
func Less(a, b *Transaction) bool {
	if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
		return cmp < 0
	}
	if !a.DateAdded.Equal(b.DateAdded) {
		return a.DateAdded.After(b.DateAdded)
	}
	return a.ID.String() > b.ID.String()
}
