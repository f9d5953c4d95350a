package transaction

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAmountConditions_PositiveMin(t *testing.T) {
	conditions := AmountConditions(decimalPtr("25"), nil)

	assert.Len(t, conditions, 1)
	assert.Equal(t, AmountGTE, conditions[0].Op)
	assert.True(t, conditions[0].Value.Equal(decimal.RequireFromString("25")))
}

func TestAmountConditions_NegativeMin(t *testing.T) {
	conditions := AmountConditions(decimalPtr("-25"), nil)

	assert.Len(t, conditions, 1)
	assert.Equal(t, AmountLTE, conditions[0].Op)
}

func TestAmountConditions_PositiveMax(t *testing.T) {
	conditions := AmountConditions(nil, decimalPtr("100"))

	assert.Len(t, conditions, 1)
	assert.Equal(t, AmountLTE, conditions[0].Op)
}

func TestAmountConditions_NegativeMax(t *testing.T) {
	conditions := AmountConditions(nil, decimalPtr("-100"))

	assert.Len(t, conditions, 1)
	assert.Equal(t, AmountGTE, conditions[0].Op)
}

func TestAmountConditions_ZeroBoundsAreSkipped(t *testing.T) {
	assert.Empty(t, AmountConditions(decimalPtr("0"), nil))
	assert.Empty(t, AmountConditions(nil, decimalPtr("0")))
	assert.Empty(t, AmountConditions(decimalPtr("0"), decimalPtr("0")))
	assert.Empty(t, AmountConditions(nil, nil))
}

func TestAmountConditions_BothBounds(t *testing.T) {
	conditions := AmountConditions(decimalPtr("10"), decimalPtr("50"))

	assert.Len(t, conditions, 2)
	assert.Equal(t, AmountGTE, conditions[0].Op)
	assert.Equal(t, AmountLTE, conditions[1].Op)
}

// A negative min with a zero max selects "at least this negative": from
// [-10, -60, 40] only -60 passes.
func TestFilter_Matches_NegativeMinZeroMax(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	filter := &Filter{
		OwnerID:   ownerID,
		MinAmount: decimalPtr("-50"),
		MaxAmount: decimalPtr("0"),
	}

	amounts := map[string]bool{
		"-10": false,
		"-60": true,
		"40":  false,
	}
	for raw, expected := range amounts {
		tx := &Transaction{
			ID:      uuid.Must(uuid.NewV4()),
			OwnerID: ownerID,
			Amount:  decimal.RequireFromString(raw),
		}
		assert.Equal(t, expected, filter.Matches(tx), "amount %s", raw)
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	out := EndOfDay(in)

	assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC), out)
}

func TestNormalizedEndDate_Unset(t *testing.T) {
	filter := &Filter{}
	assert.Nil(t, filter.NormalizedEndDate())
}

func TestFilter_Matches_EndDateIncludesWholeDay(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	endDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	filter := &Filter{
		OwnerID: ownerID,
		EndDate: &endDate,
	}

	sameDayEvening := &Transaction{
		OwnerID:   ownerID,
		Amount:    decimal.NewFromInt(5),
		DateAdded: time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC),
	}
	nextDay := &Transaction{
		OwnerID:   ownerID,
		Amount:    decimal.NewFromInt(5),
		DateAdded: time.Date(2025, 3, 15, 0, 0, 1, 0, time.UTC),
	}

	assert.True(t, filter.Matches(sameDayEvening))
	assert.False(t, filter.Matches(nextDay))
}

func TestFilter_Matches_Type(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	income := &Transaction{OwnerID: ownerID, Amount: decimal.NewFromInt(10)}
	expense := &Transaction{OwnerID: ownerID, Amount: decimal.NewFromInt(-10)}
	zero := &Transaction{OwnerID: ownerID, Amount: decimal.Zero}

	incomeFilter := &Filter{OwnerID: ownerID, Type: TypeIncome}
	assert.True(t, incomeFilter.Matches(income))
	assert.False(t, incomeFilter.Matches(expense))
	assert.False(t, incomeFilter.Matches(zero))

	expensesFilter := &Filter{OwnerID: ownerID, Type: TypeExpenses}
	assert.False(t, expensesFilter.Matches(income))
	assert.True(t, expensesFilter.Matches(expense))
	assert.False(t, expensesFilter.Matches(zero))

	allFilter := &Filter{OwnerID: ownerID, Type: TypeAll}
	assert.True(t, allFilter.Matches(income))
	assert.True(t, allFilter.Matches(expense))
	assert.True(t, allFilter.Matches(zero))
}

func TestFilter_Matches_Owner(t *testing.T) {
	filter := &Filter{OwnerID: uuid.Must(uuid.NewV4())}
	other := &Transaction{OwnerID: uuid.Must(uuid.NewV4()), Amount: decimal.NewFromInt(1)}

	assert.False(t, filter.Matches(other))
}

func TestFilter_Matches_Category(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	filter := &Filter{OwnerID: ownerID, CategoryID: categoryID}

	inCategory := &Transaction{OwnerID: ownerID, CategoryID: categoryID, Amount: decimal.NewFromInt(1)}
	uncategorized := &Transaction{OwnerID: ownerID, Amount: decimal.NewFromInt(1)}

	assert.True(t, filter.Matches(inCategory))
	assert.False(t, filter.Matches(uncategorized))
}

func TestFilter_Matches_MaxCreationTime(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	cutoff := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	filter := &Filter{OwnerID: ownerID, MaxCreationTime: timePtr(cutoff)}

	before := &Transaction{OwnerID: ownerID, Amount: decimal.NewFromInt(1), CreatedAt: cutoff.Add(-time.Minute)}
	after := &Transaction{OwnerID: ownerID, Amount: decimal.NewFromInt(1), CreatedAt: cutoff.Add(time.Minute)}

	assert.True(t, filter.Matches(before))
	assert.False(t, filter.Matches(after))
}

func TestLess_AmountAscending(t *testing.T) {
	a := &Transaction{ID: uuid.Must(uuid.NewV4()), Amount: decimal.NewFromInt(-5)}
	b := &Transaction{ID: uuid.Must(uuid.NewV4()), Amount: decimal.NewFromInt(10)}

	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
}

func TestLess_DateDescendingOnEqualAmount(t *testing.T) {
	older := &Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		Amount:    decimal.NewFromInt(10),
		DateAdded: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		Amount:    decimal.NewFromInt(10),
		DateAdded: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, Less(newer, older))
	assert.False(t, Less(older, newer))
}
