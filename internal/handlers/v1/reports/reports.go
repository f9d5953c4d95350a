package reports

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/reports"
)

// WindowInput carries the query parameters shared by every report endpoint.
type WindowInput struct {
	UserID string `query:"userId" required:"true" format:"uuid" doc:"Owner UUID"`
	Year   int    `query:"year" required:"true" minimum:"1970" maximum:"9999" doc:"Calendar year of the window"`
	Month  int    `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month of the window"`
}

func (in *WindowInput) parse() (uuid.UUID, reports.Window, error) {
	ownerID, err := uuid.FromString(in.UserID)
	if err != nil {
		return uuid.Nil, reports.Window{}, huma.NewError(http.StatusBadRequest, "invalid userId", err)
	}
	return ownerID, reports.Window{Year: in.Year, Month: time.Month(in.Month)}, nil
}
