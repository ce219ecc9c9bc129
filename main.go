package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/freekieb7/calcd/config"
	"github.com/freekieb7/calcd/handlers"
	"github.com/freekieb7/calcd/http"
	"github.com/freekieb7/calcd/telemetry"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context) error {
	// Handle SIGINT (CTRL+C) and SIGTERM gracefully.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	providers, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Export:      cfg.OTLPEndpoint != "",
	})
	if err != nil {
		return err
	}
	defer providers.Shutdown(context.Background())

	logger := telemetry.NewLogger(cfg.ServiceName, os.Stderr, cfg.LogLevel, providers.LoggerProvider)

	methods := []string{http.MethodGet}
	if cfg.AllowHead {
		methods = append(methods, http.MethodHead)
	}

	router := http.NewRouter(methods...)
	router.StrictHeaders = cfg.StrictHeaders
	handlers.Register(&router, handlers.Options{LegacyRedirects: cfg.LegacyRedirects})

	server, err := http.NewServer(cfg.Name, router,
		http.WithLogger(logger),
		http.WithTracerProvider(providers.TracerProvider),
		http.WithMeterProvider(providers.MeterProvider),
	)
	if err != nil {
		return err
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe(cfg.Addr())
	}()

	select {
	case err := <-serverErrCh:
		// Error when starting the server.
		return err
	case <-ctx.Done():
		// Stop receiving signal notifications as soon as possible.
		stop()
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-serverErrCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
