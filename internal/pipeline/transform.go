package pipeline

import (
	"context"
	"log/slog"

	"github.com/kumorigo/amedas-etl/internal/domain"
)

// AmedasTransformer implements Transformer using the domain transform
// functions: decode the point file, pick the latest record, and enrich it
// with weather-code, wind, and quality-control handling.
type AmedasTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates an AmedasTransformer.
func NewTransformer(logger *slog.Logger) *AmedasTransformer {
	return &AmedasTransformer{logger: logger}
}

func (t *AmedasTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.ObservationEvent, error) {
	obs, err := domain.ParseRawMessage(raw)
	if err != nil {
		return domain.ObservationEvent{}, err
	}

	event, err := domain.EnrichObservation(obs, raw.Value)
	if err != nil {
		return domain.ObservationEvent{}, err
	}

	t.logger.Debug("transformed observation",
		"station", event.Station,
		"observed_at", event.ObservedAt,
		"weather_code", event.WeatherCode,
	)
	return event, nil
}
