package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/internal/handlers/v1/category"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/reports"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/status"
	"github.com/carson-networks/fintrack-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/fintrack-server/internal/live"
	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/market"
	"github.com/carson-networks/fintrack-server/internal/operator"
	"github.com/carson-networks/fintrack-server/internal/service"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	Storage   *storage.Storage
	Service   *service.Service
	Operator  *operator.OperatorDelegator
	Hub       *live.Hub
	Market    *market.Client
	ResultCap int
}

func (r *Rest) Serve() {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

func (r *Rest) routes() http.Handler {
	mux := http.NewServeMux()

	// Huma operations live on their own mux so one wrapper gives every
	// operation a per-request LogData in its context.
	humaMux := http.NewServeMux()
	humaAPI := humago.New(humaMux, huma.DefaultConfig("fintrack-server", "1.0.0"))

	transaction.NewCreateTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	category.NewCreateCategoryHandler(r.Operator).Register(humaAPI)
	category.NewListCategoriesHandler(r.Service.Category).Register(humaAPI)
	category.NewRenameCategoryHandler(r.Operator).Register(humaAPI)
	category.NewDeleteCategoryHandler(r.Operator).Register(humaAPI)
	reports.NewDailyBalanceHandler(r.Service.Report).Register(humaAPI)
	reports.NewDailyExpensesHandler(r.Service.Report).Register(humaAPI)
	reports.NewBreakdownHandler(r.Service.Report).Register(humaAPI)

	mux.Handle("/v1/", logging.LoggingWrapper("V1", r.Logger,
		func(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
			humaMux.ServeHTTP(w, req)
			return nil
		}))

	// The stream route is registered on the outer mux so it wins over the
	// /v1/ prefix. Hijacked websocket connections are not subject to the
	// server's write timeout.
	streamHandler := live.NewStreamHandler(r.Hub, r.Storage, r.Logger, r.ResultCap)
	mux.HandleFunc("/v1/stream", logging.LoggingWrapper("Stream", r.Logger, streamHandler.Handler))

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	marketHandlers := market.NewHandlers(r.Market)
	mux.HandleFunc("/news/api", logging.LoggingWrapper("News", r.Logger, marketHandlers.News))
	mux.HandleFunc("/currencies/api", logging.LoggingWrapper("Currencies", r.Logger, marketHandlers.Currencies))
	mux.HandleFunc("/stocks/api", logging.LoggingWrapper("Stocks", r.Logger, marketHandlers.Stocks))
	mux.HandleFunc("/forex/api", logging.LoggingWrapper("Forex", r.Logger, marketHandlers.Forex))

	return mux
}
