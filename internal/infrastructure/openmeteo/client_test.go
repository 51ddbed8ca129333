package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

const sampleResponse = `{
	"current_weather": {"temperature": 70},
	"daily": {
		"temperature_2m_max": [75],
		"temperature_2m_min": [60],
		"weathercode": [61],
		"precipitation_sum": [2.5],
		"precipitation_probability_max": [40]
	}
}`

func TestFetchExtractsFirstDailyEntries(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(sampleResponse)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	forecast, err := client.Fetch(context.Background(), 26.1420, -81.7948)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if forecast.CurrentTemp != 70 || forecast.MaxTemp != 75 || forecast.MinTemp != 60 {
		t.Errorf("got temperatures (%v, %v, %v), want (70, 75, 60)",
			forecast.CurrentTemp, forecast.MaxTemp, forecast.MinTemp)
	}
	if forecast.WeatherCode != 61 {
		t.Errorf("WeatherCode = %d, want 61", forecast.WeatherCode)
	}
	if forecast.PrecipitationSum != 2.5 {
		t.Errorf("PrecipitationSum = %v, want 2.5", forecast.PrecipitationSum)
	}
	if forecast.PrecipitationProbability != 40 {
		t.Errorf("PrecipitationProbability = %d, want 40", forecast.PrecipitationProbability)
	}

	wantParams := map[string]string{
		"latitude":         "26.142",
		"longitude":        "-81.7948",
		"daily":            "temperature_2m_max,temperature_2m_min,weathercode,precipitation_sum,precipitation_probability_max",
		"current_weather":  "true",
		"temperature_unit": "fahrenheit",
		"timezone":         "America/New_York",
	}
	for param, want := range wantParams {
		if got := query.Get(param); got != want {
			t.Errorf("query parameter %s = %q, want %q", param, got, want)
		}
	}
}

func TestFetchRejectsNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	if _, err := client.Fetch(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for non-2xx response, got nil")
	}
}

func TestFetchRejectsEmptyDailyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"current_weather": {"temperature": 70}, "daily": {}}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	if _, err := client.Fetch(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for response without daily data, got nil")
	}
}

func TestFetchRejectsUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(WithBaseURL(server.URL))

	if _, err := client.Fetch(context.Background(), 0, 0); err == nil {
		t.Fatal("expected transport error, got nil")
	}
}

func TestFetchHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient()

	if _, err := client.Fetch(ctx, 0, 0); err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
}
