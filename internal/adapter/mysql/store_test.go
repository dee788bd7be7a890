package mysql

import (
	"testing"
	"time"

	"github.com/kumorigo/amedas-etl/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRowFromEvent_RoundTrip(t *testing.T) {
	temp := 14.4
	observed := time.Date(2025, 11, 18, 10, 40, 0, 0, time.UTC)
	event := domain.ObservationEvent{
		ID:            "44132-deadbeef01234567",
		Station:       "44132",
		ObservedAt:    observed,
		TempC:         &temp,
		WindDirection: 15,
		WindCompass:   "NNW",
		WeatherCode:   6,
		Weather:       "雨",
		WeatherEN:     "rain",
		ProcessedAt:   observed.Add(time.Minute),
	}

	row := rowFromEvent(event)
	assert.Equal(t, event.ID, row.ID)
	assert.Equal(t, &temp, row.TempC)
	assert.Nil(t, row.Snow1hCM)

	back := row.toEvent()
	assert.Equal(t, event, back)
}

func TestRowFromEvent_DropsTransientFields(t *testing.T) {
	event := domain.ObservationEvent{
		ID:           "x",
		Icons:        map[string]string{"symbol": "https://example.invalid/0.png"},
		SlackEmoji:   ":sunny:",
		DiscordEmoji: ":sunny:",
		RawPayload:   []byte("{}"),
	}

	back := rowFromEvent(event).toEvent()
	assert.Empty(t, back.Icons)
	assert.Empty(t, back.SlackEmoji)
	assert.Nil(t, back.RawPayload)
}
