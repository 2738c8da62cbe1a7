package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/lexcongreso/registration/internal/config"
	"github.com/lexcongreso/registration/internal/infra"
	"github.com/lexcongreso/registration/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// @title       Congress registration API
// @version     1.0
// @description Lead capture, pricing, payment dispatch and confirmation for the congress site.
// @BasePath    /
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Build()
	if err != nil {
		logrus.Fatal(err)
	}

	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("invalid LOG_LEVEL - %v", err)
	}
	logrus.SetLevel(lvl)

	ctx := context.Background()

	pgPool, err := infra.Postgresql(ctx, cfg.PostgresCfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer pgPool.Close()

	var mongoClient *mongo.Client
	if cfg.LeadsBackend == config.LeadsBackendMongo {
		mongoClient, err = infra.Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			logrus.Fatal(err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logrus.Errorf("failed to disconnect from mongo - %v", err)
			}
		}()

		if err := repository.EnsureMongoCustomerIndexes(ctx, mongoClient); err != nil {
			logrus.Fatal(err)
		}
	}

	redisClient, err := infra.Redis(ctx, cfg.RedisCfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer redisClient.Close()

	publisher, closePublisher, err := infra.Publisher(cfg.AmqpCfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closePublisher()

	e, err := infra.Router(cfg, pgPool, mongoClient, redisClient, publisher)
	if err != nil {
		logrus.Fatal(err)
	}

	start(e, cfg.HTTPCfg)
}

func start(app *echo.Echo, cfg config.HTTPCfg) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logrus.Errorf("failed to stop server gracefully - %v", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("shutting down the server, unexpected error occurred - %v", err)
		}
	}
}
