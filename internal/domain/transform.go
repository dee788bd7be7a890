package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kumorigo/amedas-etl/weathercode"
)

// jst is the zone AMeDAS record timestamps are expressed in.
var jst = time.FixedZone("JST", 9*60*60)

// timestampLayout is the record-key form inside a point file, e.g.
// "20251118104000" for 2025-11-18 10:40:00 JST.
const timestampLayout = "20060102150405"

// ParseRawMessage deserializes a RawMessage's value into an Observation.
// It expects a complete AMeDAS point file as published by the collector,
// with the station number in the message key.
func ParseRawMessage(raw RawMessage) (Observation, error) {
	station := string(raw.Key)
	if station == "" {
		station = raw.Headers["station"]
	}
	if station == "" {
		return Observation{}, fmt.Errorf("parse raw message: missing station key")
	}

	var records map[string]RawObservation
	if err := json.Unmarshal(raw.Value, &records); err != nil {
		return Observation{}, fmt.Errorf("parse raw message: %w", err)
	}
	if len(records) == 0 {
		return Observation{}, fmt.Errorf("parse raw message: point file for station %s is empty", station)
	}

	return Observation{Station: station, Records: records}, nil
}

// Latest returns the most recent record in the observation along with its
// timestamp key. Weather and snow1h are reported only on some timestamps, so
// the newest record carrying a weather element backfills both onto the
// result.
func (o Observation) Latest() (string, RawObservation, bool) {
	var (
		latestKey  string
		weatherKey string
	)
	for key, rec := range o.Records {
		if _, err := time.ParseInLocation(timestampLayout, key, jst); err != nil {
			continue
		}
		if key > latestKey {
			latestKey = key
		}
		if rec.Weather != nil && key > weatherKey {
			weatherKey = key
		}
	}
	if latestKey == "" {
		return "", RawObservation{}, false
	}

	latest := o.Records[latestKey]
	if weatherKey != "" && weatherKey != latestKey {
		carrier := o.Records[weatherKey]
		latest.Weather = carrier.Weather
		latest.Snow1h = carrier.Snow1h
	}
	return latestKey, latest, true
}

// EnrichObservation converts the latest record of an observation into an
// ObservationEvent: measurement unpacking with quality filtering, wind
// compass decoding, and weather-code enrichment through the public table.
func EnrichObservation(obs Observation, rawPayload []byte) (ObservationEvent, error) {
	key, latest, ok := obs.Latest()
	if !ok {
		return ObservationEvent{}, fmt.Errorf("enrich observation: station %s has no valid records", obs.Station)
	}

	observedAt, err := time.ParseInLocation(timestampLayout, key, jst)
	if err != nil {
		return ObservationEvent{}, fmt.Errorf("enrich observation: timestamp %q: %w", key, err)
	}

	event := ObservationEvent{
		ID:         generateID(obs.Station, key),
		Station:    obs.Station,
		ObservedAt: observedAt,

		PressureHPa:        measurement(latest.Pressure),
		TempC:              measurement(latest.Temp),
		HumidityPercent:    measurement(latest.Humidity),
		VisibilityM:        measurement(latest.Visibility),
		Precipitation10mMM: measurement(latest.Precipitation10m),
		Snow1hCM:           measurement(latest.Snow1h),
		WindMPS:            measurement(latest.Wind),

		RawPayload:  rawPayload,
		ProcessedAt: clock.Now(),
	}

	if latest.WindDirection.OK() {
		event.WindDirection = int(latest.WindDirection.Value)
	}
	event.WindCompass = WindCompass(event.WindDirection)
	event.WindArrow = WindArrow(event.WindDirection)

	event.WeatherCode = weathercode.CodeMissing
	if latest.Weather.OK() {
		event.WeatherCode = int(latest.Weather.Value)
	}
	entry, err := weathercode.Lookup(event.WeatherCode)
	if err != nil {
		// Station reported a code outside the published table.
		entry, _ = weathercode.Lookup(weathercode.CodeUnknown)
		event.WeatherCode = weathercode.CodeUnknown
	}
	event.Weather = entry.Description
	event.WeatherEN = entry.DescriptionEN
	event.SlackEmoji = weathercode.Emoji(entry.Code, weathercode.EmojiSlack)
	event.DiscordEmoji = weathercode.Emoji(entry.Code, weathercode.EmojiDiscord)
	if icons := entry.IconURLs(); len(icons) > 0 {
		event.Icons = make(map[string]string, len(icons))
		for set, u := range icons {
			event.Icons[string(set)] = u
		}
	}

	return event, nil
}

// measurement unpacks a quality-checked element into a plain value.
// Elements that are absent or failed quality control become nil.
func measurement(e *Element) *float64 {
	if !e.OK() {
		return nil
	}
	v := e.Value
	return &v
}

// generateID produces a deterministic ID from the station and observation
// time. Deterministic IDs enable idempotent upserts and replay safety.
func generateID(station, timestamp string) string {
	hash := sha256.Sum256([]byte(station + "|" + timestamp))
	return station + "-" + hex.EncodeToString(hash[:8])
}
