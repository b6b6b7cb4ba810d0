package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/wanderai/internal/app/models"
)

// Service produces weather snapshots for a city.
type Service struct {
	provider Provider
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(provider Provider, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		provider: provider,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// Fetch requests current conditions and the forecast concurrently. Either
// failure fails the whole fetch; no partial snapshot is returned.
func (s *Service) Fetch(ctx context.Context, city string) (*models.WeatherSnapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", models.ErrBadRequest)
	}

	var (
		current  CurrentResponse
		forecast ForecastResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.provider.Current(gctx, city)
		if err != nil {
			return fmt.Errorf("current weather for %q: %w", city, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		forecast, err = s.provider.Forecast(gctx, city)
		if err != nil {
			return fmt.Errorf("forecast for %q: %w", city, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("Weather fetch failed", zap.String("city", city), zap.Error(err))
		return nil, err
	}

	snapshot := &models.WeatherSnapshot{
		Current:   NormalizeCurrent(current),
		Forecast:  AggregateForecast(Samples(forecast), s.loc),
		FetchedAt: s.now().UTC(),
	}
	s.logger.Debug("Weather fetched",
		zap.String("city", city),
		zap.Int("forecast_days", len(snapshot.Forecast)))
	return snapshot, nil
}

// Watch starts a Watcher that refreshes the city every interval.
func (s *Service) Watch(ctx context.Context, city string, interval time.Duration) (*Watcher, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", models.ErrBadRequest)
	}
	w := NewWatcher(s, city, interval, s.logger)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w, nil
}
