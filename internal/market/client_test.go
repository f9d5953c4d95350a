package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/fintrack-server/internal/config"
)

func newTestClient(newsURL, exchangeURL, alphaURL string) *Client {
	return NewClient(&config.Config{
		NewsAPIKey:          "news-key",
		NewsBaseURL:         newsURL,
		ExchangeAPIKey:      "exchange-key",
		ExchangeBaseURL:     exchangeURL,
		AlphaVantageAPIKey:  "alpha-key",
		AlphaVantageBaseURL: alphaURL,
	}, nil)
}

func TestTopHeadlines_PassesPayloadThrough(t *testing.T) {
	payload := `{"status":"ok","articles":[{"title":"Markets rally"}]}`

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v2/top-headlines", req.URL.Path)
		assert.Equal(t, "us", req.URL.Query().Get("country"))
		assert.Equal(t, "business", req.URL.Query().Get("category"))
		assert.Equal(t, "news-key", req.URL.Query().Get("apiKey"))
		w.Write([]byte(payload))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", "")

	raw, err := client.TopHeadlines(context.Background())
	assert.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func TestTopHeadlines_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL, "", "")

	_, err := client.TopHeadlines(context.Background())
	assert.Error(t, err)
}

func TestCurrencySymbols_SortedByCode(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/exchangerates_data/symbols", req.URL.Path)
		assert.Equal(t, "exchange-key", req.Header.Get("apikey"))
		w.Write([]byte(`{"success":true,"symbols":{"USD":"United States Dollar","EUR":"Euro","GBP":"British Pound Sterling"}}`))
	}))
	defer upstream.Close()

	client := newTestClient("", upstream.URL, "")

	currencies, err := client.CurrencySymbols(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []Currency{
		{Code: "EUR", Name: "Euro"},
		{Code: "GBP", Name: "British Pound Sterling"},
		{Code: "USD", Name: "United States Dollar"},
	}, currencies)
}

func TestStockQuote_Up(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", req.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", req.URL.Query().Get("symbol"))
		assert.Equal(t, "alpha-key", req.URL.Query().Get("apikey"))
		w.Write([]byte(`{"Time Series (Daily)":{
			"2025-06-13":{"4. close":"212.50"},
			"2025-06-12":{"4. close":"210.00"}
		}}`))
	}))
	defer upstream.Close()

	client := newTestClient("", "", upstream.URL)

	quote, err := client.StockQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, &StockQuote{Symbol: "AAPL", LatestClose: "212.5", Status: StatusUp}, quote)
}

func TestStockQuote_Down(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"Time Series (Daily)":{
			"2025-06-13":{"4. close":"208.00"},
			"2025-06-12":{"4. close":"210.00"}
		}}`))
	}))
	defer upstream.Close()

	client := newTestClient("", "", upstream.URL)

	quote, err := client.StockQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, StatusDown, quote.Status)
}

func TestStockQuote_SingleDayIsUnchanged(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"Time Series (Daily)":{"2025-06-13":{"4. close":"210.00"}}}`))
	}))
	defer upstream.Close()

	client := newTestClient("", "", upstream.URL)

	quote, err := client.StockQuote(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, StatusUnchanged, quote.Status)
}

func TestStockQuote_EmptySeries(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"Note":"API rate limit reached"}`))
	}))
	defer upstream.Close()

	client := newTestClient("", "", upstream.URL)

	_, err := client.StockQuote(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestForexRate_RoundsToTwoDecimals(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "CURRENCY_EXCHANGE_RATE", req.URL.Query().Get("function"))
		assert.Equal(t, "USD", req.URL.Query().Get("from_currency"))
		assert.Equal(t, "EUR", req.URL.Query().Get("to_currency"))
		w.Write([]byte(`{"Realtime Currency Exchange Rate":{
			"1. From_Currency Code":"USD",
			"2. From_Currency Name":"United States Dollar",
			"3. To_Currency Code":"EUR",
			"4. To_Currency Name":"Euro",
			"5. Exchange Rate":"0.92481000"
		}}`))
	}))
	defer upstream.Close()

	client := newTestClient("", "", upstream.URL)

	rate, err := client.ForexRate(context.Background(), "USD", "EUR")
	assert.NoError(t, err)
	assert.Equal(t, &ForexRate{
		FromCode: "USD",
		FromName: "United States Dollar",
		ToCode:   "EUR",
		ToName:   "Euro",
		Rate:     "0.92",
	}, rate)
}

func TestForexRate_MissingRate(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"Error Message":"Invalid API call"}`))
	}))
	defer upstream.Close()

	client := newTestClient("", "", upstream.URL)

	_, err := client.ForexRate(context.Background(), "USD", "ZZZ")
	assert.Error(t, err)
}
