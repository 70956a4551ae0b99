package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/suPer8Hu/interview-lens/internal/ai"
	"github.com/suPer8Hu/interview-lens/internal/config"
	"github.com/suPer8Hu/interview-lens/internal/db"
	"github.com/suPer8Hu/interview-lens/internal/exchange"
	"github.com/suPer8Hu/interview-lens/internal/httpapi"
	"github.com/suPer8Hu/interview-lens/internal/httpapi/handlers"
	"github.com/suPer8Hu/interview-lens/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("load .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := newRegistry(cfg).Get(ctx, cfg.AIProvider, ai.ProviderOptions{
		Model:       cfg.Model(),
		Temperature: cfg.Temperature,
	})
	if err != nil {
		logrus.WithError(err).Fatal("init ai provider")
	}
	gw := ai.NewGateway(provider, ai.GatewayOptions{
		Timeout:       cfg.UpstreamTimeout,
		StreamTimeout: cfg.StreamTimeout,
	})

	var rec *exchange.Recorder
	if cfg.DBDriver != "none" {
		gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			logrus.WithError(err).Fatal("connect exchange log")
		}
		repo := exchange.NewRepo(gdb)
		if err := repo.Migrate(); err != nil {
			logrus.WithError(err).Fatal("automigrate")
		}
		rec = exchange.NewRecorder(repo)
	}

	r := httpapi.NewRouter(handlers.NewHandler(gw, rec), cfg)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":      cfg.Port,
			"provider":  cfg.AIProvider,
			"model":     cfg.Model(),
			"db_driver": cfg.DBDriver,
		}).Info("interview-lens listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("listen")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown")
	}
}
