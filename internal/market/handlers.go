package market

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/fintrack-server/internal/logging"
)

// Handlers exposes the proxy endpoints as plain HTTP handlers compatible
// with logging.LoggingWrapper.
type Handlers struct {
	Client *Client
}

func NewHandlers(client *Client) *Handlers {
	return &Handlers{Client: client}
}

func writeJSON(w http.ResponseWriter, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(payload)
}

// News handles GET /news/api. The upstream payload passes through untouched.
func (h *Handlers) News(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("news: method not GET")
	}

	stopTimer := logData.AddTiming("newsUpstreamMs")
	payload, err := h.Client.TopHeadlines(req.Context())
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(payload)
	return err
}

// Currencies handles GET /currencies/api.
func (h *Handlers) Currencies(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("currencies: method not GET")
	}

	stopTimer := logData.AddTiming("currenciesUpstreamMs")
	currencies, err := h.Client.CurrencySymbols(req.Context())
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	logData.AddData("currencyCount", len(currencies))
	return writeJSON(w, currencies)
}

// Stocks handles GET /stocks/api?symbol=.
func (h *Handlers) Stocks(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("stocks: method not GET")
	}
	symbol := req.URL.Query().Get("symbol")
	if symbol == "" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("stocks: missing symbol")
	}

	logData.AddData("symbol", symbol)
	stopTimer := logData.AddTiming("stocksUpstreamMs")
	quote, err := h.Client.StockQuote(req.Context(), symbol)
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	return writeJSON(w, quote)
}

// Forex handles GET /forex/api?from_currency=&to_currency=.
func (h *Handlers) Forex(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("forex: method not GET")
	}
	fromCurrency := req.URL.Query().Get("from_currency")
	toCurrency := req.URL.Query().Get("to_currency")
	if fromCurrency == "" || toCurrency == "" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("forex: missing from_currency or to_currency")
	}

	stopTimer := logData.AddTiming("forexUpstreamMs")
	rate, err := h.Client.ForexRate(req.Context(), fromCurrency, toCurrency)
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	return writeJSON(w, rate)
}
