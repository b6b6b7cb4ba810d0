package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal       metric.Int64Counter
	HTTPRequestDuration     metric.Float64Histogram
	WeatherFetchTotal       metric.Int64Counter
	WeatherFetchDuration    metric.Float64Histogram
	LLMRequestsTotal        metric.Int64Counter
	LLMRequestDuration      metric.Float64Histogram
	ExtractionFailuresTotal metric.Int64Counter
	ActiveWeatherWatchers   metric.Int64UpDownCounter
	SavedTripsWritesTotal   metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so it must run
// after the providers are set up to export anything.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("wanderai")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.WeatherFetchTotal, err = meter.Int64Counter(
			"weather_fetch_total",
			metric.WithDescription("Total number of weather provider calls"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create weather_fetch_total: %v", err)
		}

		m.WeatherFetchDuration, err = meter.Float64Histogram(
			"weather_fetch_duration_seconds",
			metric.WithDescription("Duration of weather provider calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create weather_fetch_duration_seconds: %v", err)
		}

		m.LLMRequestsTotal, err = meter.Int64Counter(
			"llm_requests_total",
			metric.WithDescription("Total number of generative model calls"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_requests_total: %v", err)
		}

		m.LLMRequestDuration, err = meter.Float64Histogram(
			"llm_request_duration_seconds",
			metric.WithDescription("Duration of generative model calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_request_duration_seconds: %v", err)
		}

		m.ExtractionFailuresTotal, err = meter.Int64Counter(
			"llm_extraction_failures_total",
			metric.WithDescription("Model responses that could not be turned into JSON"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_extraction_failures_total: %v", err)
		}

		m.ActiveWeatherWatchers, err = meter.Int64UpDownCounter(
			"weather_watchers_active",
			metric.WithDescription("Live weather views currently refreshing"),
			metric.WithUnit("{watcher}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create weather_watchers_active: %v", err)
		}

		m.SavedTripsWritesTotal, err = meter.Int64Counter(
			"saved_trips_writes_total",
			metric.WithDescription("Full-list writes to the saved trips store"),
			metric.WithUnit("{write}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create saved_trips_writes_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global AppMetrics, creating the instruments on first use.
// Before the providers are installed the instruments are no-ops.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
