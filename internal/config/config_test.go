package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessEnvironmentVariables_Defaults(t *testing.T) {
	env, err := ProcessEnvironmentVariables()
	assert.NoError(t, err)

	assert.Equal(t, "9446", env.Port)
	assert.Equal(t, BackendPostgres, env.DataBackend)
	assert.Equal(t, "localhost", env.PostgresAddress)
	assert.Equal(t, "5433", env.PostgresPort)
	assert.Equal(t, 0, env.ResultCap)
	assert.Equal(t, "https://newsapi.org", env.NewsBaseURL)
	assert.Equal(t, "https://api.apilayer.com", env.ExchangeBaseURL)
	assert.Equal(t, "https://www.alphavantage.co", env.AlphaVantageBaseURL)
	assert.Empty(t, env.NewsAPIKey)
}

func TestProcessEnvironmentVariables_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_BACKEND", BackendMemory)
	t.Setenv("POSTGRES_ADDRESS", "db.internal")
	t.Setenv("RESULT_CAP", "250")
	t.Setenv("NEWS_API_KEY", "abc123")

	env, err := ProcessEnvironmentVariables()
	assert.NoError(t, err)

	assert.Equal(t, "8080", env.Port)
	assert.Equal(t, BackendMemory, env.DataBackend)
	assert.Equal(t, "db.internal", env.PostgresAddress)
	assert.Equal(t, 250, env.ResultCap)
	assert.Equal(t, "abc123", env.NewsAPIKey)
}

func TestProcessEnvironmentVariables_BadResultCap(t *testing.T) {
	t.Setenv("RESULT_CAP", "not-a-number")

	_, err := ProcessEnvironmentVariables()
	assert.Error(t, err)
}
