package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dailybrief/weather-mailer/internal/domain"
)

// ReportGreeting opens every report, whatever the location list contains.
const ReportGreeting = "Good morning!\n\nHere is your daily weather forecast:\n\n"

// ForecastProvider retrieves the current-day forecast for a coordinate pair.
type ForecastProvider interface {
	Fetch(ctx context.Context, latitude, longitude float64) (domain.Forecast, error)
}

// FetchFailure records a location whose forecast could not be retrieved.
type FetchFailure struct {
	Location domain.Location
	Err      error
}

// ReportBuilder assembles the plaintext report body from per-location
// forecasts.
type ReportBuilder struct {
	provider ForecastProvider
}

// NewReportBuilder wraps the provider used to fetch each location's forecast.
func NewReportBuilder(provider ForecastProvider) *ReportBuilder {
	return &ReportBuilder{provider: provider}
}

// Build fetches every location in order and appends one block per location.
// A failed fetch degrades that location to a placeholder line and is reported
// in the returned failures; it never stops the remaining locations.
func (b *ReportBuilder) Build(ctx context.Context, locations []domain.Location) (string, []FetchFailure) {
	var report strings.Builder
	report.WriteString(ReportGreeting)

	var failures []FetchFailure
	for _, location := range locations {
		forecast, err := b.provider.Fetch(ctx, location.Latitude, location.Longitude)
		if err != nil {
			failures = append(failures, FetchFailure{Location: location, Err: err})
			fmt.Fprintf(&report, "%s: Could not retrieve weather data.\n\n", location.Name)
			continue
		}

		fmt.Fprintf(&report, "%s:\n", location.Name)
		fmt.Fprintf(&report, "  Current Temp: %.1f°F\n", forecast.CurrentTemp)
		fmt.Fprintf(&report, "  High: %.1f°F | Low: %.1f°F\n", forecast.MaxTemp, forecast.MinTemp)
		if forecast.PrecipitationProbability > 0 {
			description := domain.DescribeWeatherCode(forecast.WeatherCode)
			fmt.Fprintf(&report, "  Precipitation: %s (%d%% chance)\n", description, forecast.PrecipitationProbability)
			fmt.Fprintf(&report, "  Total Precipitation: %.1fmm\n", forecast.PrecipitationSum)
		}
		report.WriteString("\n")
	}

	return report.String(), failures
}
