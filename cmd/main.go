/*
Package main is the entry point for the Nexora edge service.

It loads configuration, initializes logging, wires the video token issuer
and the optional enrollment, checkout and content features, serves HTTP,
and shuts down gracefully on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexora/internal/app/checkout"
	"nexora/internal/app/db"
	"nexora/internal/app/enrollment"
	"nexora/internal/app/storage"
	"nexora/internal/app/videotoken"
	"nexora/internal/configs"
	"nexora/internal/handler"
	"nexora/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("storage_enabled", cfg.StorageEnabled()).
		Bool("database_enabled", cfg.DatabaseEnabled()).
		Bool("payments_enabled", cfg.PaymentsEnabled()).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	issuer := videotoken.NewIssuer(videotoken.Credentials{
		AppID:        cfg.ZegoAppID,
		ServerSecret: cfg.ZegoServerSecret,
	})
	if !issuer.Configured() {
		logx.Warn("Zegocloud credentials are not configured; video token requests will fail.")
	}

	deps := handler.NewAppDeps(cfg, issuer)
	defer deps.Close()

	if cfg.DatabaseEnabled() {
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "Failed to initialize database")
		}
		defer pool.Close()

		deps.Enrollment = enrollment.NewService(enrollment.NewPgStore(pool))

		if cfg.PaymentsEnabled() {
			gateway := checkout.NewStripeGateway(checkout.GatewayConfig{
				SecretKey: cfg.StripeSecretKey,
				Currency:  cfg.CheckoutCurrency,
			})
			deps.Checkout = checkout.NewService(checkout.NewPgStore(pool), gateway)
		} else {
			logx.Warn("STRIPE_SECRET_KEY is not set; paid checkout is disabled.")
		}
	} else {
		logx.Warn("DATABASE_URL is not set; free enrollment and checkout are disabled.")
	}

	if cfg.StorageEnabled() {
		storageService, err := storage.NewStorageService(ctx, storage.ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			logx.Fatal(err, "Failed to initialize storage service")
		}

		deps.Storage = storageService
	} else {
		logx.Warn("S3 storage is not configured; content uploads are disabled.")
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Nexora server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
