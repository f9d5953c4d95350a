package main

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/fintrack-server/api"
	"github.com/carson-networks/fintrack-server/internal/config"
	"github.com/carson-networks/fintrack-server/internal/live"
	"github.com/carson-networks/fintrack-server/internal/logging"
	"github.com/carson-networks/fintrack-server/internal/market"
	"github.com/carson-networks/fintrack-server/internal/operator"
	"github.com/carson-networks/fintrack-server/internal/service"
	"github.com/carson-networks/fintrack-server/internal/storage"
)

func main() {
	// A local .env overrides nothing that is already exported.
	_ = godotenv.Load()

	logger := logging.SetupLogging()
	logrus.Info("fintrack-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	hub := live.NewHub(logger)

	// One worker keeps writes serialized, which is also what keeps live
	// snapshot notifications in commit order.
	delegator := operator.NewOperatorDelegator(dbStorage, hub, logger, 1)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, envConfig.ResultCap)
	marketClient := market.NewClient(envConfig, nil)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:    logger,
			Port:      envConfig.Port,
			Storage:   dbStorage,
			Service:   svc,
			Operator:  delegator,
			Hub:       hub,
			Market:    marketClient,
			ResultCap: envConfig.ResultCap,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
