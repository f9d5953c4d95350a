package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
)

// RenameCategoryBody is the request body for renaming a category.
type RenameCategoryBody struct {
	UserID string `json:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
	Name   string `json:"name" required:"true" minLength:"1" doc:"New category name"`
}

// RenameCategoryInput is the Huma input for renaming a category.
type RenameCategoryInput struct {
	ID   string `path:"id" format:"uuid" doc:"Category UUID"`
	Body RenameCategoryBody
}

// RenameCategoryOutput is the Huma output for renaming a category.
type RenameCategoryOutput struct {
	Status int
}

// RenameCategoryHandler handles PUT /v1/category/{id}.
type RenameCategoryHandler struct {
	Operator actionProcessor
}

// NewRenameCategoryHandler creates a new RenameCategoryHandler.
func NewRenameCategoryHandler(op actionProcessor) *RenameCategoryHandler {
	return &RenameCategoryHandler{Operator: op}
}

// Register registers the rename category endpoint with the Huma API.
func (h *RenameCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "rename-category",
		Method:      http.MethodPut,
		Path:        "/v1/category/{id}",
		Summary:     "Rename category",
		Description: "Renames an existing category. Live views pick up the new name on their next snapshot.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *RenameCategoryHandler) handle(ctx context.Context, input *RenameCategoryInput) (*RenameCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid category id", err)
	}
	ownerID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}

	action := &actions.RenameCategory{
		ID:      id,
		OwnerID: ownerID,
		Name:    input.Body.Name,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("renameCategoryMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, actionError(err, "failed to rename category")
	}

	return &RenameCategoryOutput{Status: http.StatusNoContent}, nil
}
