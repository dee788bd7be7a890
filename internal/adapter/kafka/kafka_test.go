package kafka

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/kumorigo/amedas-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawMessage(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("44132"),
		Value:     []byte(`{"20251118104000":{"temp":[14.4,0]}}`),
		Topic:     "raw-amedas-observations",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "station", Value: []byte("44132")},
		},
	}

	raw := mapMessageToRawMessage(msg)

	assert.Equal(t, []byte("44132"), raw.Key)
	assert.JSONEq(t, `{"20251118104000":{"temp":[14.4,0]}}`, string(raw.Value))
	assert.Equal(t, "raw-amedas-observations", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "44132", raw.Headers["station"])
	assert.Nil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 11, 18, 1, 40, 0, 0, time.UTC)
	event := domain.ObservationEvent{
		ID:          "44132-deadbeef01234567",
		Station:     "44132",
		WeatherCode: 6,
		Weather:     "雨",
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("44132-deadbeef01234567"), msg.Key)
	assert.Contains(t, string(msg.Value), `"weather_code":6`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "station", msg.Headers[0].Key)
	assert.Equal(t, []byte("44132"), msg.Headers[0].Value)
	assert.Equal(t, "weather_code", msg.Headers[1].Key)
	assert.Equal(t, []byte(strconv.Itoa(6)), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestSerializeToMessage_Roundtrip(t *testing.T) {
	temp := 0.9
	event := domain.ObservationEvent{
		ID:          "14163-cafe0123456789ab",
		Station:     "14163",
		ObservedAt:  time.Date(2025, 11, 18, 10, 20, 0, 0, time.UTC),
		TempC:       &temp,
		WeatherCode: 8,
		Weather:     "雪",
		WeatherEN:   "snow",
		ProcessedAt: time.Now().UTC(),
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	var roundtrip domain.ObservationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &roundtrip))

	type eventSummary struct {
		ID          string
		Station     string
		WeatherCode int
		Weather     string
		TempC       float64
	}

	expected := eventSummary{ID: event.ID, Station: event.Station, WeatherCode: event.WeatherCode, Weather: event.Weather, TempC: *event.TempC}
	actual := eventSummary{ID: roundtrip.ID, Station: roundtrip.Station, WeatherCode: roundtrip.WeatherCode, Weather: roundtrip.Weather, TempC: *roundtrip.TempC}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}
