package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dailybrief/weather-mailer/internal/domain"
)

// ReportSender delivers a finished report to the configured recipients.
type ReportSender interface {
	SendReport(ctx context.Context, body string) error
}

// DeliveryStage indicates which step of the delivery pipeline failed.
type DeliveryStage string

const (
	// DeliveryStageFetch marks failures while retrieving a location's forecast.
	DeliveryStageFetch DeliveryStage = "fetch"
	// DeliveryStageDispatch marks failures while dispatching the report.
	DeliveryStageDispatch DeliveryStage = "dispatch"
)

// DeliveryErrorHandler is invoked once per failure during a delivery run.
type DeliveryErrorHandler func(stage DeliveryStage, err error)

// Delivery runs one fetch-build-send cycle: the forecast for every location
// is fetched, the report assembled, and the result dispatched once.
type Delivery struct {
	builder *ReportBuilder
	sender  ReportSender

	fetchTimeout    time.Duration
	dispatchTimeout time.Duration
	onError         DeliveryErrorHandler
}

// DeliveryOption configures behavioural aspects of a delivery run.
type DeliveryOption func(*Delivery)

// WithFetchTimeout customises the maximum duration allowed for fetching all
// forecasts.
func WithFetchTimeout(timeout time.Duration) DeliveryOption {
	return func(d *Delivery) {
		if timeout > 0 {
			d.fetchTimeout = timeout
		}
	}
}

// WithDispatchTimeout customises the maximum duration allowed for dispatching
// the report.
func WithDispatchTimeout(timeout time.Duration) DeliveryOption {
	return func(d *Delivery) {
		if timeout > 0 {
			d.dispatchTimeout = timeout
		}
	}
}

// WithDeliveryErrorHandler registers the callback used when a stage of the
// run fails.
func WithDeliveryErrorHandler(handler DeliveryErrorHandler) DeliveryOption {
	return func(d *Delivery) {
		if handler != nil {
			d.onError = handler
		}
	}
}

// NewDelivery builds a delivery that fetches forecasts via provider and
// dispatches the report via sender.
func NewDelivery(provider ForecastProvider, sender ReportSender, opts ...DeliveryOption) *Delivery {
	delivery := &Delivery{
		builder:         NewReportBuilder(provider),
		sender:          sender,
		fetchTimeout:    60 * time.Second,
		dispatchTimeout: 30 * time.Second,
		onError:         func(DeliveryStage, error) {},
	}

	for _, opt := range opts {
		opt(delivery)
	}

	return delivery
}

// Run executes one delivery cycle. Fetch failures degrade individual
// locations and are reported through the error handler only; a dispatch
// failure is reported and returned.
func (d *Delivery) Run(ctx context.Context, locations []domain.Location) error {
	if d.sender == nil {
		return fmt.Errorf("delivery missing report sender dependency")
	}

	fetchCtx, cancelFetch := context.WithTimeout(ctx, d.fetchTimeout)
	report, failures := d.builder.Build(fetchCtx, locations)
	cancelFetch()

	for _, failure := range failures {
		d.onError(
			DeliveryStageFetch,
			fmt.Errorf("fetch forecast for %s: %w", failure.Location.Name, failure.Err),
		)
	}

	dispatchCtx, cancelDispatch := context.WithTimeout(ctx, d.dispatchTimeout)
	defer cancelDispatch()
	if err := d.sender.SendReport(dispatchCtx, report); err != nil {
		err = fmt.Errorf("dispatch report: %w", err)
		d.onError(DeliveryStageDispatch, err)
		return err
	}

	return nil
}
