package app

import (
	"context"
	"fmt"
	"time"

	"fxticker/config"
	"fxticker/internal/chart"
	"fxticker/internal/poller"
	"fxticker/internal/ui"
	"fxticker/pkg/forex"

	"go.uber.org/zap"
)

const shutdownGrace = 5 * time.Second

// Run wires the chart store, rate poller, and UI server together and
// blocks until ctx is cancelled. It owns startup and teardown order:
// buffers first, then the poller that fills them, then the server that
// exposes them; teardown is the reverse.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pairs := make([]forex.Pair, 0, len(cfg.Poll.Pairs))
	for _, raw := range cfg.Poll.Pairs {
		pair, err := forex.ParsePair(raw)
		if err != nil {
			return fmt.Errorf("bad pair in config: %w", err)
		}
		pairs = append(pairs, pair)
	}

	store := chart.NewStore(pairs, cfg.Chart.MaxSamples)
	restClient := forex.NewRESTClient(cfg.Forex.BaseURL, cfg.Forex.Timeout)

	p := poller.New(poller.Config{
		Interval:   cfg.Poll.Interval,
		Timeout:    cfg.Forex.Timeout,
		MaxBackoff: cfg.Poll.MaxBackoff,
	}, restClient, store, logger)
	p.Start(ctx)

	server := ui.NewServer(cfg.UI.Addr, cfg.UI.RedrawInterval, store, logger)
	serveErr := server.Start()

	logger.Info("fxticker running",
		zap.Strings("pairs", cfg.Poll.Pairs),
		zap.String("api", cfg.Forex.BaseURL),
		zap.String("ui", cfg.UI.Addr),
	)

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("ui server: %w", err)
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := server.Shutdown(stopCtx); err != nil {
		logger.Warn("ui server shutdown", zap.Error(err))
	}
	if err := p.Stop(stopCtx); err != nil {
		logger.Warn("poller shutdown", zap.Error(err))
	}

	return runErr
}
