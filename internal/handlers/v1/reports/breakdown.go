package reports

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/reports"
)

// BreakdownInput is the Huma input for the category breakdown report.
type BreakdownInput struct {
	WindowInput
	Kind string `query:"kind" required:"true" enum:"income,expenses" doc:"Which sign of transaction to break down"`
}

// CategoryTotal is the API model for one slice of a breakdown.
type CategoryTotal struct {
	CategoryName string `json:"categoryName" doc:"Resolved category name"`
	Total        string `json:"total" doc:"Absolute magnitude summed over the window"`
}

// BreakdownResponseBody is the response body for the category breakdown report.
type BreakdownResponseBody struct {
	Totals []CategoryTotal `json:"totals" doc:"Per-category totals sorted by name"`
}

// BreakdownOutput is the Huma output for the category breakdown report.
type BreakdownOutput struct {
	Body BreakdownResponseBody
}

// breakdowner is the interface for computing category breakdowns.
type breakdowner interface {
	Breakdown(ctx context.Context, ownerID uuid.UUID, window reports.Window, kind reports.BreakdownKind) ([]reports.CategoryTotal, error)
}

// BreakdownHandler handles GET /v1/reports/breakdown.
type BreakdownHandler struct {
	ReportService breakdowner
}

// NewBreakdownHandler creates a new BreakdownHandler.
func NewBreakdownHandler(svc breakdowner) *BreakdownHandler {
	return &BreakdownHandler{ReportService: svc}
}

// Register registers the breakdown endpoint with the Huma API.
func (h *BreakdownHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "category-breakdown",
		Method:      http.MethodGet,
		Path:        "/v1/reports/breakdown",
		Summary:     "Category breakdown report",
		Description: "Returns per-category totals for one sign of transaction over one calendar month.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *BreakdownHandler) handle(ctx context.Context, input *BreakdownInput) (*BreakdownOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("breakdownMs")
	}
	totals, err := h.ReportService.Breakdown(ctx, ownerID, window, reports.BreakdownKind(input.Kind))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute breakdown", err)
	}

	resp := BreakdownResponseBody{
		Totals: make([]CategoryTotal, len(totals)),
	}
	for i, total := range totals {
		resp.Totals[i] = CategoryTotal{
			CategoryName: total.CategoryName,
			Total:        total.Total.String(),
		}
	}
	sort.Slice(resp.Totals, func(i, j int) bool {
		return resp.Totals[i].CategoryName < resp.Totals[j].CategoryName
	})

	return &BreakdownOutput{Body: resp}, nil
}
