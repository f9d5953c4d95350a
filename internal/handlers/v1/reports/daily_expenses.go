package reports

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/reports"
)

// DailyExpensesInput is the Huma input for the daily expenses report.
type DailyExpensesInput struct {
	WindowInput
}

// DailyExpensesResponseBody is the response body for the daily expenses
// report. Totals are per-day spending magnitudes, not cumulative.
type DailyExpensesResponseBody struct {
	Points []DailyPoint `json:"points" doc:"Spending per day with expense activity, ascending"`
}

// DailyExpensesOutput is the Huma output for the daily expenses report.
type DailyExpensesOutput struct {
	Body DailyExpensesResponseBody
}

// dailyExpenser is the interface for computing the daily expense series.
type dailyExpenser interface {
	DailyExpenses(ctx context.Context, ownerID uuid.UUID, window reports.Window) ([]reports.DailyPoint, error)
}

// DailyExpensesHandler handles GET /v1/reports/daily-expenses.
type DailyExpensesHandler struct {
	ReportService dailyExpenser
}

// NewDailyExpensesHandler creates a new DailyExpensesHandler.
func NewDailyExpensesHandler(svc dailyExpenser) *DailyExpensesHandler {
	return &DailyExpensesHandler{ReportService: svc}
}

// Register registers the daily expenses endpoint with the Huma API.
func (h *DailyExpensesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "daily-expenses",
		Method:      http.MethodGet,
		Path:        "/v1/reports/daily-expenses",
		Summary:     "Daily expenses report",
		Description: "Returns the user's per-day spending magnitudes for one calendar month.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *DailyExpensesHandler) handle(ctx context.Context, input *DailyExpensesInput) (*DailyExpensesOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("dailyExpensesMs")
	}
	points, err := h.ReportService.DailyExpenses(ctx, ownerID, window)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute daily expenses", err)
	}

	resp := DailyExpensesResponseBody{
		Points: make([]DailyPoint, len(points)),
	}
	for i, point := range points {
		resp.Points[i] = DailyPoint{
			Date:  point.Date,
			Total: point.Total.String(),
		}
	}

	return &DailyExpensesOutput{Body: resp}, nil
}
