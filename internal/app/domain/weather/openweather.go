package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/wanderai/internal/app/models"
	"github.com/FACorreiaa/wanderai/internal/app/observability/metrics"
)

const (
	providerName       = "openweather"
	defaultBaseURL     = "https://api.openweathermap.org/data/2.5"
	defaultHTTPTimeout = 10 * time.Second
)

type owmCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// CurrentResponse is the provider's current-conditions payload.
type CurrentResponse struct {
	Name    string         `json:"name"`
	Dt      int64          `json:"dt"`
	Main    owmMain        `json:"main"`
	Weather []owmCondition `json:"weather"`
	Wind    owmWind        `json:"wind"`
	Sys     struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Visibility *int `json:"visibility"`
	Timezone   int  `json:"timezone"`
}

// ForecastResponse is the provider's 5 day / 3 hour forecast payload.
type ForecastResponse struct {
	List []struct {
		Dt      int64          `json:"dt"`
		Main    owmMain        `json:"main"`
		Weather []owmCondition `json:"weather"`
		Wind    owmWind        `json:"wind"`
		Pop     float64        `json:"pop"`
	} `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

type owmError struct {
	Message string `json:"message"`
}

// Provider fetches raw weather data for a city.
type Provider interface {
	Current(ctx context.Context, city string) (CurrentResponse, error)
	Forecast(ctx context.Context, city string) (ForecastResponse, error)
}

// OpenWeatherClient calls the OpenWeatherMap REST API in metric units. Calls
// are rate limited and pass through a circuit breaker; failures are never
// retried.
type OpenWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *zap.Logger
}

type ClientOption func(*OpenWeatherClient)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *OpenWeatherClient) { o.httpClient = c }
}

// WithRateLimit bounds outbound calls to rps per second. A non-positive rps
// disables limiting.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(o *OpenWeatherClient) {
		if rps <= 0 {
			o.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

var _ Provider = (*OpenWeatherClient)(nil)

func NewOpenWeatherClient(apiKey, baseURL string, logger *zap.Logger, opts ...ClientOption) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &OpenWeatherClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 0),
		logger:     logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *OpenWeatherClient) Current(ctx context.Context, city string) (CurrentResponse, error) {
	var out CurrentResponse
	err := c.get(ctx, "weather", city, nil, &out)
	return out, err
}

func (c *OpenWeatherClient) Forecast(ctx context.Context, city string) (ForecastResponse, error) {
	var out ForecastResponse
	err := c.get(ctx, "forecast", city, url.Values{"cnt": {"40"}}, &out)
	return out, err
}

func (c *OpenWeatherClient) get(ctx context.Context, endpoint, city string, params url.Values, out any) (err error) {
	ctx, span := otel.Tracer("OpenWeatherClient").Start(ctx, "OpenWeather."+endpoint)
	defer span.End()
	span.SetAttributes(
		attribute.String("weather.endpoint", endpoint),
		attribute.String("weather.city", city),
	)

	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		attrs := metric.WithAttributes(
			attribute.String("endpoint", endpoint),
			attribute.String("outcome", outcome),
		)
		m := metrics.Get()
		m.WeatherFetchTotal.Add(ctx, 1, attrs)
		m.WeatherFetchDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}()

	if err = c.limiter.Wait(ctx); err != nil {
		return &models.ProviderError{Provider: providerName, Message: "Could not fetch weather data.", Err: err}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	// Only transport failures and 5xx count against the breaker; a 404 for an
	// unknown city is the caller's problem, and a call the caller cancelled
	// or timed out says nothing about the provider.
	var abandoned error
	res, err := c.breaker.Execute(func() (interface{}, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if reqErr != nil {
			return nil, reqErr
		}
		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			if ctx.Err() != nil {
				abandoned = doErr
				return nil, nil
			}
			return nil, doErr
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			defer resp.Body.Close()
			return nil, providerStatusError(resp)
		}
		return resp, nil
	})
	if err != nil {
		var pe *models.ProviderError
		if errors.As(err, &pe) {
			return pe
		}
		c.logger.Warn("Weather provider call failed",
			zap.String("endpoint", endpoint),
			zap.String("city", city),
			zap.Error(err))
		return &models.ProviderError{Provider: providerName, Message: "Could not fetch weather data.", Err: err}
	}

	if abandoned != nil {
		c.logger.Debug("Weather provider call abandoned by caller",
			zap.String("endpoint", endpoint),
			zap.String("city", city),
			zap.Error(abandoned))
		return &models.ProviderError{Provider: providerName, Message: "Could not fetch weather data.", Err: abandoned}
	}

	resp := res.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providerStatusError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.ProviderError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Message:  "Could not read weather data.",
			Err:      fmt.Errorf("decode %s response: %w", endpoint, err),
		}
	}
	return nil
}

// providerStatusError builds a ProviderError from a non-200 response, using
// the provider's own message when the body carries one.
func providerStatusError(resp *http.Response) *models.ProviderError {
	pe := &models.ProviderError{Provider: providerName, Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e owmError
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		pe.Message = e.Message
	} else {
		pe.Message = "Could not fetch weather data."
	}
	return pe
}
