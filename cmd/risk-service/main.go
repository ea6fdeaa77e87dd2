package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/synaptica-ai/riskform/pkg/common/config"
	"github.com/synaptica-ai/riskform/pkg/common/logger"
	"github.com/synaptica-ai/riskform/pkg/form"
	"github.com/synaptica-ai/riskform/pkg/gateway/middleware"
	"github.com/synaptica-ai/riskform/pkg/observability/metrics"
	"github.com/synaptica-ai/riskform/pkg/serving/predictor"
)

func main() {
	dotEnvErr := config.LoadDotEnv()
	logger.Init()
	if dotEnvErr != nil {
		logger.Log.WithError(dotEnvErr).Warn("Failed to read .env, using process environment")
	}
	cfg := config.Load()

	// Artifacts load before the listener starts; a broken model must never serve.
	artifacts, err := predictor.LoadArtifacts(cfg.ScalerPath, cfg.ModelPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load prediction artifacts")
	}
	logger.Log.WithFields(map[string]interface{}{
		"scaler_path": artifacts.ScalerPath,
		"model_path":  artifacts.ModelPath,
		"algorithm":   artifacts.Algorithm,
	}).Info("Prediction artifacts loaded")

	ui, err := form.LoadUIConfig(cfg.UIConfigPath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.UIConfigPath).Fatal("Failed to load UI config")
	}

	handler := form.NewHandler(predictor.NewPredictor(artifacts), ui)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      newRouter(cfg, handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Risk Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Risk Service...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	logger.Log.Info("Risk Service stopped")
}

func newRouter(cfg *config.Config, handler *form.Handler) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.BodyLimit(cfg.MaxRequestBody))

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// Off by default: every valid submission gets a result.
	ui := router.PathPrefix("/").Subrouter()
	ui.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	handler.Register(ui)

	return router
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
