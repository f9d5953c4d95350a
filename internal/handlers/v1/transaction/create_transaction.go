package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	UserID          string `json:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
	CategoryID      string `json:"categoryId,omitempty" doc:"Category UUID, omit for uncategorized"`
	Amount          string `json:"amount" required:"true" doc:"Signed decimal amount"`
	TransactionName string `json:"transactionName" required:"true" minLength:"1" maxLength:"20" doc:"Name of the transaction"`
	DateAdded       string `json:"dateAdded,omitempty" doc:"MM/DD/YYYY transaction date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new transaction for the given user.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (*actions.CreateTransaction, error) {
	ownerID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}
	categoryID, err := parseOptionalCategoryID(input.Body.CategoryID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var dateAdded time.Time
	if input.Body.DateAdded != "" {
		dateAdded, err = parseTransactionDate(input.Body.DateAdded)
		if err != nil {
			return nil, err
		}
	}

	return &actions.CreateTransaction{
		OwnerID:         ownerID,
		CategoryID:      categoryID,
		Amount:          amount,
		TransactionName: input.Body.TransactionName,
		DateAdded:       dateAdded,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, actionError(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", action.CreatedID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: action.CreatedID.String()},
	}, nil
}
