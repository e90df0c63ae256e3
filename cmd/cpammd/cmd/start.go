package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/api"
	"github.com/paw-chain/cpamm/app"
	"github.com/paw-chain/cpamm/app/health"
)

// StartCmd runs the node: it imports genesis on first start and serves the
// query API and the telemetry endpoints until interrupted.
func StartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the node",
		Long: `Open the state database, import genesis.json if no state was committed
yet, and serve the REST API and the metrics and health endpoints until the
process receives SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			return runNode(cmd.Context(), cfg, logger)
		},
	}
}

func runNode(ctx context.Context, cfg app.Config, logger log.Logger) error {
	tel, err := app.InitTelemetry(cfg.Telemetry())
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	recorder, err := app.NewTxRecorder(tel.Meter())
	if err != nil {
		return err
	}
	node, err := newNode(cfg, logger, app.WithTxRecorder(recorder))
	if err != nil {
		return err
	}
	defer node.Close()

	if err := node.CheckInvariants(); err != nil {
		return err
	}

	apiListener, err := net.Listen("tcp", cfg.APIAddress)
	if err != nil {
		return fmt.Errorf("listen api: %w", err)
	}
	telemetryListener, err := net.Listen("tcp", cfg.MetricsAddress)
	if err != nil {
		_ = apiListener.Close()
		return fmt.Errorf("listen telemetry: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	checker := health.NewChecker(logger, node, health.DefaultConfig())
	server := api.NewServer(logger, node, api.ConfigFromApp(cfg))

	errCh := make(chan error, 2)
	go func() { errCh <- server.Serve(ctx, apiListener) }()
	go func() { errCh <- serveTelemetry(ctx, logger, telemetryListener, newTelemetryHandler(checker)) }()

	logger.Info("node started", "pair", node.Pair().String(), "height", node.LastBlockHeight())

	// The first server to return stops the other one.
	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
		cancel()
	}
	logger.Info("node stopped", "height", node.LastBlockHeight())
	return errors.Join(errs...)
}
