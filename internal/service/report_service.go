package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/reports"
	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/category"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// ReportService assembles chart-ready aggregates for one owner and one
// calendar-month window. Each call recomputes from the current transaction
// set.
type ReportService struct {
	storage *storage.Storage
}

func NewReportService(store *storage.Storage) *ReportService {
	return &ReportService{storage: store}
}

func (s *ReportService) windowTransactions(ctx context.Context, ownerID uuid.UUID, window reports.Window) ([]*transaction.Transaction, error) {
	start := window.Start()
	end := window.End()
	return s.storage.Transactions.List(ctx, &transaction.Filter{
		OwnerID:   ownerID,
		StartDate: &start,
		EndDate:   &end,
	})
}

// DailyBalance returns the owner's cumulative daily balance series for the
// window. An empty window yields an empty series.
func (s *ReportService) DailyBalance(ctx context.Context, ownerID uuid.UUID, window reports.Window) ([]reports.DailyPoint, error) {
	rows, err := s.windowTransactions(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}
	return reports.DailyBalance(rows), nil
}

// DailyExpenses returns the owner's per-day spending magnitudes for the
// window. Days without expenses are absent; income never contributes.
func (s *ReportService) DailyExpenses(ctx context.Context, ownerID uuid.UUID, window reports.Window) ([]reports.DailyPoint, error) {
	rows, err := s.windowTransactions(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}
	return reports.DailyExpenses(rows), nil
}

// Breakdown returns per-category totals for one sign of transaction in the
// window. Category names are resolved against the owner's current
// categories; dangling references come back as "Uncategorized".
func (s *ReportService) Breakdown(ctx context.Context, ownerID uuid.UUID, window reports.Window, kind reports.BreakdownKind) ([]reports.CategoryTotal, error) {
	rows, err := s.windowTransactions(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}

	categories, err := s.storage.Categories.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	lookup := func(id uuid.UUID) string {
		if name, ok := names[id]; ok {
			return name
		}
		return category.UncategorizedName
	}

	return reports.Breakdown(rows, lookup, kind), nil
}
