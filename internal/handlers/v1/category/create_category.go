package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/operator/actions"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	UserID string `json:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
	Name   string `json:"name" required:"true" minLength:"1" doc:"Category name"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CreateCategoryBody
}

// CreateCategoryResponse is the response body for creating a category.
type CreateCategoryResponse struct {
	ID string `json:"id" doc:"Created category UUID"`
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Status int
	Body   CreateCategoryResponse
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	Operator actionProcessor
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(op actionProcessor) *CreateCategoryHandler {
	return &CreateCategoryHandler{Operator: op}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create category",
		Description: "Creates a new category for the given user.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}

	action := &actions.CreateCategory{
		OwnerID: ownerID,
		Name:    input.Body.Name,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createCategoryMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, actionError(err, "failed to create category")
	}

	if logData != nil {
		logData.AddData("categoryID", action.CreatedID.String())
	}

	return &CreateCategoryOutput{
		Status: http.StatusCreated,
		Body:   CreateCategoryResponse{ID: action.CreatedID.String()},
	}, nil
}
