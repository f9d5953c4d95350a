package service

import (
	"context"
	"time"

	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// TransactionService handles transaction read-side business logic. Writes go
// through the operator, not through here.
type TransactionService struct {
	storage   *storage.Storage
	resultCap int
}

// NewTransactionService creates a new TransactionService. resultCap bounds
// uncursored list results; 0 leaves them uncapped, which is the default.
func NewTransactionService(store *storage.Storage, resultCap int) *TransactionService {
	return &TransactionService{storage: store, resultCap: resultCap}
}

// ListTransactions runs the composed query described by spec and pages
// through it with an optional cursor. Without a cursor the effective limit
// is, in order of precedence: the spec's own limit, the configured result
// cap, or no cap at all.
func (s *TransactionService) ListTransactions(ctx context.Context, spec *transaction.Filter, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	filter := *spec

	limit := filter.Limit
	if limit == 0 {
		limit = s.resultCap
	}
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter.Offset = offset
	filter.MaxCreationTime = maxCreationTime
	if limit > 0 {
		// Fetch one extra row to learn whether a next page exists.
		filter.Limit = limit + 1
	} else {
		filter.Limit = 0
	}

	rows, err := s.storage.Transactions.List(ctx, &filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]

		// The first page locks in an upper bound on created_at so rows
		// created after it cannot shift later pages.
		cursorMaxCreationTime := time.Now()
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = Transaction{
			ID:              row.ID,
			OwnerID:         row.OwnerID,
			CategoryID:      row.CategoryID,
			Amount:          row.Amount,
			TransactionName: row.TransactionName,
			DateAdded:       row.DateAdded,
			CreatedAt:       row.CreatedAt,
		}
	}

	return convertedTransactions, nextCursor, nil
}
