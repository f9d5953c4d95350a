package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
	storagetx "github.com/carson-networks/fintrack-server/internal/storage/transaction"
)

// UpdateTransactionBody carries the fields to replace. Absent fields keep
// their stored values; categoryId set to the empty string clears the
// category reference.
type UpdateTransactionBody struct {
	UserID          string  `json:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
	TransactionName *string `json:"transactionName,omitempty" minLength:"1" maxLength:"20" doc:"New name"`
	Amount          *string `json:"amount,omitempty" doc:"New signed decimal amount"`
	CategoryID      *string `json:"categoryId,omitempty" doc:"New category UUID, empty string to clear"`
	DateAdded       *string `json:"dateAdded,omitempty" doc:"New MM/DD/YYYY transaction date"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Operator actionProcessor
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op actionProcessor) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces the provided fields of an existing transaction.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (*actions.UpdateTransaction, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}
	ownerID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}

	var update storagetx.Update
	if input.Body.TransactionName != nil {
		update.TransactionName = omit.From(*input.Body.TransactionName)
	}
	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		update.Amount = omit.From(amount)
	}
	if input.Body.CategoryID != nil {
		categoryID, err := parseOptionalCategoryID(*input.Body.CategoryID)
		if err != nil {
			return nil, err
		}
		update.CategoryID = omit.From(categoryID)
	}
	if input.Body.DateAdded != nil {
		dateAdded, err := parseTransactionDate(*input.Body.DateAdded)
		if err != nil {
			return nil, err
		}
		update.DateAdded = omit.From(dateAdded)
	}

	if update.IsZero() {
		return nil, huma.NewError(http.StatusBadRequest, "no fields to update")
	}

	return &actions.UpdateTransaction{
		ID:      id,
		OwnerID: ownerID,
		Update:  update,
	}, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, actionError(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
