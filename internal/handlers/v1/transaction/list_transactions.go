package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/service"
	storagetx "github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListTransactionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"500" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListTransactionsBody is the request body for listing transactions. Every
// filter field is optional; set fields are combined with AND. Repeat the
// same filter fields when paging with a cursor.
type ListTransactionsBody struct {
	UserID     string                  `json:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
	Type       string                  `json:"type,omitempty" enum:"all,income,expenses" doc:"Restrict to one side of the amount sign"`
	StartDate  string                  `json:"startDate,omitempty" doc:"MM/DD/YYYY inclusive lower date bound"`
	EndDate    string                  `json:"endDate,omitempty" doc:"MM/DD/YYYY inclusive upper date bound"`
	MinAmount  string                  `json:"minAmount,omitempty" doc:"Sign-aware lower amount bound"`
	MaxAmount  string                  `json:"maxAmount,omitempty" doc:"Sign-aware upper amount bound"`
	CategoryID string                  `json:"categoryId,omitempty" doc:"Restrict to one category UUID"`
	Limit      int                     `json:"limit,omitempty" minimum:"0" maximum:"500" doc:"Result cap, 0 uses the server default"`
	Cursor     *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Body ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions sorted by amount ascending"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, spec *storagetx.Filter, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Runs a composed filter over the user's transactions with cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input into a
// filter and an optional cursor. When a cursor is provided, limit, offset,
// and maxCreationTime come from it and the body's limit is ignored.
func parseListTransactionsInput(input *ListTransactionsInput) (*storagetx.Filter, *service.TransactionCursor, error) {
	ownerID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, nil, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}

	filter := &storagetx.Filter{
		OwnerID: ownerID,
		Type:    storagetx.Type(input.Body.Type),
		Limit:   input.Body.Limit,
	}
	if filter.Type == "" {
		filter.Type = storagetx.TypeAll
	}

	if input.Body.StartDate != "" {
		start, err := parseTransactionDate(input.Body.StartDate)
		if err != nil {
			return nil, nil, err
		}
		filter.StartDate = &start
	}
	if input.Body.EndDate != "" {
		end, err := parseTransactionDate(input.Body.EndDate)
		if err != nil {
			return nil, nil, err
		}
		filter.EndDate = &end
	}
	if input.Body.MinAmount != "" {
		min, err := decimal.NewFromString(input.Body.MinAmount)
		if err != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid minAmount", err)
		}
		filter.MinAmount = &min
	}
	if input.Body.MaxAmount != "" {
		max, err := decimal.NewFromString(input.Body.MaxAmount)
		if err != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid maxAmount", err)
		}
		filter.MaxAmount = &max
	}
	filter.CategoryID, err = parseOptionalCategoryID(input.Body.CategoryID)
	if err != nil {
		return nil, nil, err
	}

	if input.Body.Cursor == nil {
		return filter, nil, nil
	}

	if input.Body.Cursor.Position < 0 {
		return nil, nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}
	maxCreationTime, parseErr := time.Parse(time.RFC3339, input.Body.Cursor.MaxCreationTime)
	if parseErr != nil {
		return nil, nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", parseErr)
	}

	return filter, &service.TransactionCursor{
		Position:        input.Body.Cursor.Position,
		Limit:           input.Body.Cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	filter, requestCursor, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, filter, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list transactions", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}

	for i, tx := range transactions {
		categoryID := ""
		if tx.CategoryID != uuid.Nil {
			categoryID = tx.CategoryID.String()
		}
		resp.Transactions[i] = Transaction{
			ID:              tx.ID.String(),
			UserID:          tx.OwnerID.String(),
			CategoryID:      categoryID,
			Amount:          tx.Amount.String(),
			TransactionName: tx.TransactionName,
			DateAdded:       tx.DateAdded.Format(time.RFC3339),
			CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
		}
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
