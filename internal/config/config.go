package config

import (
	"os"
	"strconv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port        string
	DataBackend string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	// ResultCap bounds the number of rows a composed transaction query may
	// return. 0 means no cap.
	ResultCap int

	NewsAPIKey          string
	NewsBaseURL         string
	ExchangeAPIKey      string
	ExchangeBaseURL     string
	AlphaVantageAPIKey  string
	AlphaVantageBaseURL string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:             "9446",
		DataBackend:      BackendPostgres,
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		ResultCap: 0,

		NewsBaseURL:         "https://newsapi.org",
		ExchangeBaseURL:     "https://api.apilayer.com",
		AlphaVantageBaseURL: "https://www.alphavantage.co",
	}

	envPort := os.Getenv("PORT")
	envDataBackend := os.Getenv("DATA_BACKEND")
	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envResultCap := os.Getenv("RESULT_CAP")
	envNewsAPIKey := os.Getenv("NEWS_API_KEY")
	envNewsBaseURL := os.Getenv("NEWS_BASE_URL")
	envExchangeAPIKey := os.Getenv("EXCHANGE_API_KEY")
	envExchangeBaseURL := os.Getenv("EXCHANGE_BASE_URL")
	envAlphaVantageAPIKey := os.Getenv("ALPHAVANTAGE_API_KEY")
	envAlphaVantageBaseURL := os.Getenv("ALPHAVANTAGE_BASE_URL")

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envDataBackend) != 0 {
		env.DataBackend = envDataBackend
	}

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envResultCap) != 0 {
		resultCap, err := strconv.Atoi(envResultCap)
		if err != nil {
			return nil, err
		}
		env.ResultCap = resultCap
	}

	if len(envNewsAPIKey) != 0 {
		env.NewsAPIKey = envNewsAPIKey
	}

	if len(envNewsBaseURL) != 0 {
		env.NewsBaseURL = envNewsBaseURL
	}

	if len(envExchangeAPIKey) != 0 {
		env.ExchangeAPIKey = envExchangeAPIKey
	}

	if len(envExchangeBaseURL) != 0 {
		env.ExchangeBaseURL = envExchangeBaseURL
	}

	if len(envAlphaVantageAPIKey) != 0 {
		env.AlphaVantageAPIKey = envAlphaVantageAPIKey
	}

	if len(envAlphaVantageBaseURL) != 0 {
		env.AlphaVantageBaseURL = envAlphaVantageBaseURL
	}

	return &env, nil
}
