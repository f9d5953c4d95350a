package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
)

// DeleteCategoryInput is the Huma input for deleting a category.
type DeleteCategoryInput struct {
	ID     string `path:"id" format:"uuid" doc:"Category UUID"`
	UserID string `query:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
}

// DeleteCategoryResponse is the response body for deleting a category.
type DeleteCategoryResponse struct {
	DeletedTransactions int64 `json:"deletedTransactions" doc:"Number of transactions removed by the cascade"`
}

// DeleteCategoryOutput is the Huma output for deleting a category.
type DeleteCategoryOutput struct {
	Body DeleteCategoryResponse
}

// DeleteCategoryHandler handles DELETE /v1/category/{id}. Deleting a
// category also deletes every transaction referencing it, atomically.
type DeleteCategoryHandler struct {
	Operator actionProcessor
}

// NewDeleteCategoryHandler creates a new DeleteCategoryHandler.
func NewDeleteCategoryHandler(op actionProcessor) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{Operator: op}
}

// Register registers the delete category endpoint with the Huma API.
func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/v1/category/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category and every transaction referencing it in one atomic write.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid category id", err)
	}
	ownerID, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}

	action := &actions.DeleteCategory{ID: id, OwnerID: ownerID}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteCategoryMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, actionError(err, "failed to delete category")
	}

	if logData != nil {
		logData.AddData("deletedTransactions", action.DeletedTransactions)
	}

	return &DeleteCategoryOutput{
		Body: DeleteCategoryResponse{DeletedTransactions: action.DeletedTransactions},
	}, nil
}
