package transaction

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/operator/actions"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	UserID          string `json:"userId" doc:"Owner UUID"`
	CategoryID      string `json:"categoryId,omitempty" doc:"Category UUID, empty when uncategorized"`
	Amount          string `json:"amount" doc:"Signed decimal amount"`
	TransactionName string `json:"transactionName" doc:"Name of the transaction"`
	DateAdded       string `json:"dateAdded" doc:"RFC3339 transaction date"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// transactionDateLayout matches the calendar-date form the clients send.
const transactionDateLayout = "01/02/2006"

var transactionDatePattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/\d{4}$`)

// parseTransactionDate parses an MM/DD/YYYY calendar date. The pattern check
// runs first so out-of-range components like 13/40/2025 fail the same way
// malformed strings do.
func parseTransactionDate(value string) (time.Time, error) {
	if !transactionDatePattern.MatchString(value) {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "date must be MM/DD/YYYY")
	}
	parsed, err := time.Parse(transactionDateLayout, value)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}
	return parsed, nil
}

// parseOptionalCategoryID treats an empty string as "uncategorized".
func parseOptionalCategoryID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	categoryID, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
	}
	return categoryID, nil
}

// actionError maps a failed Process call to an HTTP error. Validation
// failures are the caller's fault; everything else is ours.
func actionError(err error, message string) error {
	if actions.IsValidation(err) {
		return huma.NewError(http.StatusBadRequest, err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
