package poller

import (
	"context"
	"sync"
	"time"

	"fxticker/internal/chart"
	"fxticker/pkg/forex"

	"go.uber.org/zap"
)

// RateSource provides the current rate for a pair. *forex.RESTClient
// satisfies it; tests substitute scripted fakes.
type RateSource interface {
	GetRate(ctx context.Context, pair forex.Pair) (float64, error)
}

// RateSourceFunc is a function adapter for RateSource.
type RateSourceFunc func(ctx context.Context, pair forex.Pair) (float64, error)

func (f RateSourceFunc) GetRate(ctx context.Context, pair forex.Pair) (float64, error) {
	return f(ctx, pair)
}

// Config holds poller configuration.
type Config struct {
	Interval   time.Duration // Poll period per pair (default: 2s)
	Timeout    time.Duration // Per-request timeout (default: 10s)
	MaxBackoff time.Duration // Cap on the failure backoff (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:   2 * time.Second,
		Timeout:    10 * time.Second,
		MaxBackoff: 10 * time.Second,
	}
}

// Poller drives one fetch loop per tracked pair. Each loop polls
// immediately on start and then once per interval; a paused buffer makes
// the loop skip the fetch for that cycle without touching its schedule,
// and the schedules of different pairs never interact. A new poll for a
// pair is not issued until the previous one finished, so appends for one
// buffer always arrive in timestamp order.
type Poller struct {
	cfg    Config
	source RateSource
	store  *chart.Store
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller over the given store.
func New(cfg Config, source RateSource, store *chart.Store, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxBackoff < cfg.Interval {
		cfg.MaxBackoff = cfg.Interval
	}
	return &Poller{
		cfg:    cfg,
		source: source,
		store:  store,
		logger: logger,
	}
}

// Start launches one polling goroutine per tracked pair.
func (p *Poller) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for _, buf := range p.store.Buffers() {
		p.wg.Add(1)
		go p.runPair(buf)
	}

	p.logger.Info("rate poller started",
		zap.Int("pairs", len(p.store.Pairs())),
		zap.Duration("interval", p.cfg.Interval),
	)
}

// Stop cancels all loops and waits for them to exit. In-flight fetches are
// abandoned via context cancellation; Stop gives up when its own context
// expires.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("rate poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runPair is the per-pair poll loop.
func (p *Poller) runPair(buf *chart.Buffer) {
	defer p.wg.Done()

	pair := buf.Pair()
	backoff := p.cfg.Interval

	timer := time.NewTimer(0) // first poll happens immediately
	defer timer.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-timer.C:
		}

		if buf.Paused() {
			timer.Reset(p.cfg.Interval)
			continue
		}

		if err := p.pollOnce(pair, buf); err != nil {
			p.logger.Warn("poll failed",
				zap.String("pair", pair.String()),
				zap.Bool("parse_error", forex.IsParseError(err)),
				zap.Duration("retry_in", backoff),
				zap.Error(err),
			)
			timer.Reset(backoff)
			// Double the wait after each consecutive failure, up to the cap
			backoff *= 2
			if backoff > p.cfg.MaxBackoff {
				backoff = p.cfg.MaxBackoff
			}
			continue
		}

		backoff = p.cfg.Interval
		timer.Reset(p.cfg.Interval)
	}
}

// pollOnce fetches one rate and appends it to the pair's buffer.
func (p *Poller) pollOnce(pair forex.Pair, buf *chart.Buffer) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	rate, err := p.source.GetRate(ctx, pair)
	if err != nil {
		return err
	}

	buf.Append(chart.Sample{Time: time.Now().UTC(), Rate: rate})

	p.logger.Debug("rate sampled",
		zap.String("pair", pair.String()),
		zap.Float64("rate", rate),
		zap.Int("samples", buf.Len()),
	)
	return nil
}
