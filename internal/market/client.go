// Package market proxies the handful of third-party financial APIs the web
// client shows alongside the user's own data. The server keeps the API keys;
// the client never talks to the upstreams directly.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/fintrack-server/internal/config"
)

// Currency is one entry of the currency symbol listing.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StockQuote is the reshaped daily quote for one symbol. Status compares the
// latest close against the previous trading day.
type StockQuote struct {
	Symbol      string `json:"symbol"`
	LatestClose string `json:"latestClose"`
	Status      string `json:"status"`
}

const (
	StatusUp        = "up"
	StatusDown      = "down"
	StatusUnchanged = "unchanged"
)

// ForexRate is the reshaped exchange rate between two currencies. Rate is
// rounded to two decimal places.
type ForexRate struct {
	FromCode string `json:"fromCode"`
	FromName string `json:"fromName"`
	ToCode   string `json:"toCode"`
	ToName   string `json:"toName"`
	Rate     string `json:"rate"`
}

// Client calls the market upstreams. A nil HTTPClient falls back to a
// default with a request timeout.
type Client struct {
	httpClient *http.Client

	newsAPIKey          string
	newsBaseURL         string
	exchangeAPIKey      string
	exchangeBaseURL     string
	alphaVantageAPIKey  string
	alphaVantageBaseURL string
}

func NewClient(env *config.Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient:          httpClient,
		newsAPIKey:          env.NewsAPIKey,
		newsBaseURL:         env.NewsBaseURL,
		exchangeAPIKey:      env.ExchangeAPIKey,
		exchangeBaseURL:     env.ExchangeBaseURL,
		alphaVantageAPIKey:  env.AlphaVantageAPIKey,
		alphaVantageBaseURL: env.AlphaVantageBaseURL,
	}
}

func (c *Client) get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market: upstream returned %d", resp.StatusCode)
	}
	return body, nil
}

// TopHeadlines returns the upstream business-news payload untouched.
func (c *Client) TopHeadlines(ctx context.Context) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("country", "us")
	query.Set("category", "business")
	query.Set("apiKey", c.newsAPIKey)

	body, err := c.get(ctx, c.newsBaseURL+"/v2/top-headlines?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// CurrencySymbols returns the supported currency codes with their display
// names, sorted by code.
func (c *Client) CurrencySymbols(ctx context.Context) ([]Currency, error) {
	header := http.Header{}
	header.Set("apikey", c.exchangeAPIKey)

	body, err := c.get(ctx, c.exchangeBaseURL+"/exchangerates_data/symbols", header)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Symbols map[string]string `json:"symbols"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("market: decoding symbols: %w", err)
	}

	currencies := make([]Currency, 0, len(payload.Symbols))
	for code, name := range payload.Symbols {
		currencies = append(currencies, Currency{Code: code, Name: name})
	}
	sort.Slice(currencies, func(i, j int) bool {
		return currencies[i].Code < currencies[j].Code
	})
	return currencies, nil
}

// StockQuote fetches the daily series for symbol and reduces it to the
// latest close plus its direction against the previous trading day. A series
// with a single day comes back unchanged.
func (c *Client) StockQuote(ctx context.Context, symbol string) (*StockQuote, error) {
	query := url.Values{}
	query.Set("function", "TIME_SERIES_DAILY")
	query.Set("symbol", symbol)
	query.Set("apikey", c.alphaVantageAPIKey)

	body, err := c.get(ctx, c.alphaVantageBaseURL+"/query?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Series map[string]struct {
			Close string `json:"4. close"`
		} `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("market: decoding daily series: %w", err)
	}
	if len(payload.Series) == 0 {
		return nil, fmt.Errorf("market: no daily series for %q", symbol)
	}

	days := make([]string, 0, len(payload.Series))
	for day := range payload.Series {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	latestClose, err := decimal.NewFromString(payload.Series[days[0]].Close)
	if err != nil {
		return nil, fmt.Errorf("market: parsing close: %w", err)
	}

	status := StatusUnchanged
	if len(days) > 1 {
		previousClose, err := decimal.NewFromString(payload.Series[days[1]].Close)
		if err != nil {
			return nil, fmt.Errorf("market: parsing close: %w", err)
		}
		switch latestClose.Cmp(previousClose) {
		case 1:
			status = StatusUp
		case -1:
			status = StatusDown
		}
	}

	return &StockQuote{
		Symbol:      symbol,
		LatestClose: latestClose.String(),
		Status:      status,
	}, nil
}

// ForexRate fetches the exchange rate between two currencies, rounded to two
// decimal places.
func (c *Client) ForexRate(ctx context.Context, fromCurrency, toCurrency string) (*ForexRate, error) {
	query := url.Values{}
	query.Set("function", "CURRENCY_EXCHANGE_RATE")
	query.Set("from_currency", fromCurrency)
	query.Set("to_currency", toCurrency)
	query.Set("apikey", c.alphaVantageAPIKey)

	body, err := c.get(ctx, c.alphaVantageBaseURL+"/query?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Rate struct {
			FromCode string `json:"1. From_Currency Code"`
			FromName string `json:"2. From_Currency Name"`
			ToCode   string `json:"3. To_Currency Code"`
			ToName   string `json:"4. To_Currency Name"`
			Rate     string `json:"5. Exchange Rate"`
		} `json:"Realtime Currency Exchange Rate"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("market: decoding exchange rate: %w", err)
	}
	if payload.Rate.Rate == "" {
		return nil, fmt.Errorf("market: no exchange rate for %s/%s", fromCurrency, toCurrency)
	}

	rate, err := decimal.NewFromString(payload.Rate.Rate)
	if err != nil {
		return nil, fmt.Errorf("market: parsing exchange rate: %w", err)
	}

	return &ForexRate{
		FromCode: payload.Rate.FromCode,
		FromName: payload.Rate.FromName,
		ToCode:   payload.Rate.ToCode,
		ToName:   payload.Rate.ToName,
		Rate:     rate.Round(2).String(),
	}, nil
}
