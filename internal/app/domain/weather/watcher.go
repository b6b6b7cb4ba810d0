package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/FACorreiaa/wanderai/internal/app/models"
	"github.com/FACorreiaa/wanderai/internal/app/observability/metrics"
)

// Fetcher produces a snapshot for a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*models.WeatherSnapshot, error)
}

// Update is one refresh outcome delivered by a Watcher.
type Update struct {
	Snapshot *models.WeatherSnapshot
	Err      error
}

// Watcher refreshes a city's weather on a fixed interval, starting right away.
// Starting a refresh cancels any refresh still in flight, so only the newest
// result is delivered. After Stop no further updates are published and the
// Updates channel is closed.
type Watcher struct {
	fetcher  Fetcher
	city     string
	interval time.Duration
	logger   *zap.Logger

	scheduler *gocron.Scheduler
	updates   chan Update

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	inflight context.CancelFunc
	stopped  bool
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewWatcher(fetcher Fetcher, city string, interval time.Duration, logger *zap.Logger) *Watcher {
	return &Watcher{
		fetcher:   fetcher,
		city:      city,
		interval:  interval,
		logger:    logger,
		scheduler: gocron.NewScheduler(time.UTC),
		updates:   make(chan Update, 1),
	}
}

// Start schedules the refresh job. The watcher stops by itself when ctx ends.
func (w *Watcher) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", models.ErrBadRequest)
	}

	w.mu.Lock()
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	if _, err := w.scheduler.Every(w.interval).Do(w.refresh); err != nil {
		w.cancel()
		return fmt.Errorf("schedule weather refresh: %w", err)
	}
	w.scheduler.StartAsync()

	metrics.Get().ActiveWeatherWatchers.Add(ctx, 1)
	w.logger.Info("Weather watcher started",
		zap.String("city", w.city),
		zap.Duration("interval", w.interval))

	go func() {
		<-w.ctx.Done()
		w.Stop()
	}()
	return nil
}

// Updates returns the channel refresh outcomes are published on.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Stop halts the schedule, cancels any in-flight refresh and closes Updates.
// It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		cancel := w.cancel
		w.mu.Unlock()

		w.scheduler.Stop()
		if cancel != nil {
			cancel()
		}
		w.wg.Wait()
		close(w.updates)

		if cancel != nil {
			metrics.Get().ActiveWeatherWatchers.Add(context.Background(), -1)
		}
		w.logger.Info("Weather watcher stopped", zap.String("city", w.city))
	})
}

func (w *Watcher) refresh() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	if w.inflight != nil {
		w.inflight()
	}
	fetchCtx, cancel := context.WithCancel(w.ctx)
	w.inflight = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()
	defer cancel()

	snapshot, err := w.fetcher.Fetch(fetchCtx, w.city)

	// A cancelled fetch was either superseded or stopped; neither publishes.
	if fetchCtx.Err() != nil {
		w.logger.Debug("Dropping superseded weather refresh",
			zap.String("city", w.city),
			zap.Error(err))
		return
	}
	if err != nil {
		w.logger.Warn("Weather refresh failed",
			zap.String("city", w.city),
			zap.Error(err))
	}

	select {
	case w.updates <- Update{Snapshot: snapshot, Err: err}:
	case <-fetchCtx.Done():
	}
}
