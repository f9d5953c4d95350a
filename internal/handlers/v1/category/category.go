package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/fintrack-server/internal/operator/actions"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// actionError maps a failed Process call to an HTTP error.
func actionError(err error, message string) error {
	if actions.IsValidation(err) {
		return huma.NewError(http.StatusBadRequest, err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
