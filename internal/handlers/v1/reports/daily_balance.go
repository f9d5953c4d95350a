package reports

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/reports"
)

// DailyBalanceInput is the Huma input for the daily balance report.
type DailyBalanceInput struct {
	WindowInput
}

// DailyPoint is the API model for one day of the running-balance series.
type DailyPoint struct {
	Date  string `json:"date" doc:"UTC calendar day, YYYY-MM-DD"`
	Total string `json:"total" doc:"Cumulative signed balance through this day"`
}

// DailyBalanceResponseBody is the response body for the daily balance report.
type DailyBalanceResponseBody struct {
	Points []DailyPoint `json:"points" doc:"Running balance per day with activity, ascending"`
}

// DailyBalanceOutput is the Huma output for the daily balance report.
type DailyBalanceOutput struct {
	Body DailyBalanceResponseBody
}

// dailyBalancer is the interface for computing the daily balance series.
type dailyBalancer interface {
	DailyBalance(ctx context.Context, ownerID uuid.UUID, window reports.Window) ([]reports.DailyPoint, error)
}

// DailyBalanceHandler handles GET /v1/reports/daily-balance.
type DailyBalanceHandler struct {
	ReportService dailyBalancer
}

// NewDailyBalanceHandler creates a new DailyBalanceHandler.
func NewDailyBalanceHandler(svc dailyBalancer) *DailyBalanceHandler {
	return &DailyBalanceHandler{ReportService: svc}
}

// Register registers the daily balance endpoint with the Huma API.
func (h *DailyBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "daily-balance",
		Method:      http.MethodGet,
		Path:        "/v1/reports/daily-balance",
		Summary:     "Daily balance report",
		Description: "Returns the user's cumulative daily balance for one calendar month.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *DailyBalanceHandler) handle(ctx context.Context, input *DailyBalanceInput) (*DailyBalanceOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, window, err := input.parse()
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("dailyBalanceMs")
	}
	points, err := h.ReportService.DailyBalance(ctx, ownerID, window)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute daily balance", err)
	}

	resp := DailyBalanceResponseBody{
		Points: make([]DailyPoint, len(points)),
	}
	for i, point := range points {
		resp.Points[i] = DailyPoint{
			Date:  point.Date,
			Total: point.Total.String(),
		}
	}

	return &DailyBalanceOutput{Body: resp}, nil
}
