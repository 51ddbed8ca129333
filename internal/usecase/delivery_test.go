package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dailybrief/weather-mailer/internal/domain"
)

type stubProvider struct {
	forecast domain.Forecast
	err      error
}

func (p *stubProvider) Fetch(context.Context, float64, float64) (domain.Forecast, error) {
	return p.forecast, p.err
}

type recordingSender struct {
	body string
	err  error
}

func (s *recordingSender) SendReport(_ context.Context, body string) error {
	s.body = body
	return s.err
}

func TestRunDispatchesReportAndSwallowsFetchFailures(t *testing.T) {
	sender := &recordingSender{}
	var stages []DeliveryStage
	delivery := NewDelivery(
		&stubProvider{err: errors.New("timeout")},
		sender,
		WithDeliveryErrorHandler(func(stage DeliveryStage, _ error) {
			stages = append(stages, stage)
		}),
	)

	locations := []domain.Location{{Name: "Naples, FL", Latitude: 26.1420, Longitude: -81.7948}}

	if err := delivery.Run(context.Background(), locations); err != nil {
		t.Fatalf("Run returned %v, want nil despite fetch failure", err)
	}

	if len(stages) != 1 || stages[0] != DeliveryStageFetch {
		t.Errorf("stages = %v, want exactly one fetch stage", stages)
	}
	if !strings.Contains(sender.body, "Could not retrieve weather data.") {
		t.Errorf("dispatched report missing placeholder:\n%s", sender.body)
	}
}

func TestRunReturnsDispatchFailure(t *testing.T) {
	sendErr := errors.New("relay unavailable")
	sender := &recordingSender{err: sendErr}
	var stages []DeliveryStage
	delivery := NewDelivery(
		&stubProvider{forecast: domain.Forecast{CurrentTemp: 70, MaxTemp: 75, MinTemp: 60}},
		sender,
		WithDeliveryErrorHandler(func(stage DeliveryStage, _ error) {
			stages = append(stages, stage)
		}),
	)

	locations := []domain.Location{{Name: "Naples, FL", Latitude: 26.1420, Longitude: -81.7948}}

	err := delivery.Run(context.Background(), locations)
	if err == nil {
		t.Fatal("Run returned nil, want dispatch error")
	}
	if !errors.Is(err, sendErr) {
		t.Errorf("Run error %v does not wrap the send error", err)
	}
	if len(stages) != 1 || stages[0] != DeliveryStageDispatch {
		t.Errorf("stages = %v, want exactly one dispatch stage", stages)
	}
}

func TestRunRequiresSender(t *testing.T) {
	delivery := NewDelivery(&stubProvider{}, nil)

	if err := delivery.Run(context.Background(), nil); err == nil {
		t.Fatal("Run returned nil, want error for missing sender")
	}
}
