// Package reports buckets window-scoped transaction sets into chart-ready
// series. Aggregation is a full recompute over the current set every time;
// with working sets of at most a few thousand rows there is nothing to gain
// from incremental updates.
package reports

import (
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// Window selects one calendar month. Both bounds are inclusive: the window
// runs from the first day at 00:00:00 through the last day at 23:59:59, UTC.
type Window struct {
	Year  int
	Month time.Month
}

func (w Window) Start() time.Time {
	return time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (w Window) End() time.Time {
	// Day 0 of the next month is the last day of this one.
	return time.Date(w.Year, w.Month+1, 0, 23, 59, 59, 0, time.UTC)
}

func (w Window) Contains(t time.Time) bool {
	u := t.UTC()
	return !u.Before(w.Start()) && !u.After(w.End())
}

// DailyPoint is one day of the running-balance series.
type DailyPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// DailyBalance groups transactions by UTC calendar day, sums each day, and
// returns the days in ascending order with a cumulative total. The running
// total starts at zero inside the window; it never carries over from a
// previous month. An empty input yields an empty series.
func DailyBalance(transactions []*transaction.Transaction) []DailyPoint {
	dailySums := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		day := tx.DateAdded.UTC().Format(time.DateOnly)
		dailySums[day] = dailySums[day].Add(tx.Amount)
	}

	days := make([]string, 0, len(dailySums))
	for day := range dailySums {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]DailyPoint, 0, len(days))
	runningTotal := decimal.Zero
	for _, day := range days {
		runningTotal = runningTotal.Add(dailySums[day])
		series = append(series, DailyPoint{Date: day, Total: runningTotal})
	}
	return series
}

// DailyExpenses groups expense transactions by UTC calendar day and returns
// each day's total spending as a positive magnitude, days ascending. Unlike
// DailyBalance the series is per-day, not cumulative, and income never
// appears in it.
func DailyExpenses(transactions []*transaction.Transaction) []DailyPoint {
	dailySums := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Amount.Sign() >= 0 {
			continue
		}
		day := tx.DateAdded.UTC().Format(time.DateOnly)
		dailySums[day] = dailySums[day].Add(tx.Amount)
	}

	days := make([]string, 0, len(dailySums))
	for day := range dailySums {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]DailyPoint, 0, len(days))
	for _, day := range days {
		series = append(series, DailyPoint{Date: day, Total: dailySums[day].Neg()})
	}
	return series
}

// BreakdownKind selects which sign of transaction a category breakdown
// keeps.
type BreakdownKind string

const (
	BreakdownIncome   BreakdownKind = "income"
	BreakdownExpenses BreakdownKind = "expenses"
)

// CategoryTotal is one slice of a breakdown. Total is an absolute magnitude.
type CategoryTotal struct {
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// Breakdown sums absolute amounts per resolved category name for one sign of
// transaction: income keeps amounts > 0, expenses keeps amounts < 0, and
// zero amounts contribute to neither. Dangling or unset category references
// resolve through lookup, which is expected to fall back to "Uncategorized".
// The result order is unspecified; consumers sort or color as they see fit.
func Breakdown(transactions []*transaction.Transaction, lookup func(uuid.UUID) string, kind BreakdownKind) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		sign := tx.Amount.Sign()
		if kind == BreakdownIncome && sign <= 0 {
			continue
		}
		if kind == BreakdownExpenses && sign >= 0 {
			continue
		}

		name := lookup(tx.CategoryID)
		totals[name] = totals[name].Add(tx.Amount.Abs())
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{CategoryName: name, Total: total})
	}
	return result
}
