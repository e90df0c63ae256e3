package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paw-chain/cpamm/app/health"
)

// newTelemetryHandler serves /metrics and the health endpoints.
func newTelemetryHandler(checker *health.Checker) http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	checker.RegisterRoutes(router)

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(
		handlers.CompressHandler(router),
	)
}

// serveTelemetry serves the telemetry handler on l until ctx is cancelled.
func serveTelemetry(ctx context.Context, logger log.Logger, l net.Listener, handler http.Handler) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting telemetry server", "address", l.Addr().String())
		errCh <- server.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
