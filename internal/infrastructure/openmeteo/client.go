package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/dailybrief/weather-mailer/internal/domain"
)

const (
	defaultBaseURL  = "https://api.open-meteo.com/v1/forecast"
	defaultTimezone = "America/New_York"

	// dailyFields is the fixed set of daily variables requested per forecast.
	dailyFields = "temperature_2m_max,temperature_2m_min,weathercode,precipitation_sum,precipitation_probability_max"
)

// Client fetches current-day forecasts from the Open-Meteo forecast API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timezone   string
	limiter    *rate.Limiter
}

// Option configures behavioural aspects of the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (useful for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimezone sets the named timezone sent with every forecast request.
func WithTimezone(timezone string) Option {
	return func(c *Client) {
		if timezone != "" {
			c.timezone = timezone
		}
	}
}

// WithRateLimit caps requests against the API at rps requests per second with
// the given burst size.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewClient builds a client against the public Open-Meteo API.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		timezone:   defaultTimezone,
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
	Daily struct {
		TemperatureMax           []float64 `json:"temperature_2m_max"`
		TemperatureMin           []float64 `json:"temperature_2m_min"`
		WeatherCode              []int     `json:"weathercode"`
		PrecipitationSum         []float64 `json:"precipitation_sum"`
		PrecipitationProbability []int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Fetch retrieves the forecast for the given coordinates. Any transport
// failure, non-2xx status, or response without daily data is returned as an
// error so the caller can degrade to a placeholder for that location.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64) (domain.Forecast, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Forecast{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("daily", dailyFields)
	query.Set("current_weather", "true")
	query.Set("temperature_unit", "fahrenheit")
	query.Set("timezone", c.timezone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("request forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Forecast{}, fmt.Errorf("forecast request failed: %s", resp.Status)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}

	daily := payload.Daily
	if len(daily.TemperatureMax) == 0 || len(daily.TemperatureMin) == 0 || len(daily.WeatherCode) == 0 {
		return domain.Forecast{}, fmt.Errorf("forecast response contains no daily data")
	}

	forecast := domain.Forecast{
		CurrentTemp: payload.CurrentWeather.Temperature,
		MaxTemp:     daily.TemperatureMax[0],
		MinTemp:     daily.TemperatureMin[0],
		WeatherCode: daily.WeatherCode[0],
	}
	if len(daily.PrecipitationSum) > 0 {
		forecast.PrecipitationSum = daily.PrecipitationSum[0]
	}
	if len(daily.PrecipitationProbability) > 0 {
		forecast.PrecipitationProbability = daily.PrecipitationProbability[0]
	}

	return forecast, nil
}
