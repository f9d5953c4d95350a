package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
)

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	ID     string `path:"id" format:"uuid" doc:"Transaction UUID"`
	UserID string `query:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct {
	Status int
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	Operator actionProcessor
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(op actionProcessor) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Operator: op}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction/{id}",
		Summary:     "Delete transaction",
		Description: "Deletes a transaction owned by the given user.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}
	ownerID, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}

	action := &actions.DeleteTransaction{ID: id, OwnerID: ownerID}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, actionError(err, "failed to delete transaction")
	}

	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
