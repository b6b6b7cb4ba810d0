package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/pkg/config"
	"github.com/FACorreiaa/wanderai/internal/routes"
	"github.com/FACorreiaa/wanderai/internal/server"
	"github.com/FACorreiaa/wanderai/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.ParseLevel(cfg.Observability.LogLevel),
		zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	zlog := logger.Log
	defer func() { _ = zlog.Sync() }()

	otelShutdown, err := server.InitObservability(cfg.Observability, zlog)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			zlog.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	ctx := context.Background()
	srv, err := server.New(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer srv.Close()

	handlers, err := routes.NewAppHandlers(ctx, cfg, srv.GetDBPool(), zlog)
	if err != nil {
		return err
	}
	srv.SetRouter(server.SetupRouter(cfg, handlers, zlog))

	pprofServer := server.StartPprofServer(cfg.Observability.PprofAddr, zlog)
	httpServer := srv.HTTPServer()

	done := make(chan struct{})
	go server.GracefulShutdown(zlog, done, httpServer, pprofServer)

	zlog.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	zlog.Info("Graceful shutdown complete")
	return nil
}
