package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawMessage represents an unprocessed message from the source topic.
// Value carries a full AMeDAS point file; Key carries the station number.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Element is a single measured value with its JMA quality flag.
// JMA encodes elements as two-value JSON arrays, e.g. [0.4, 0].
type Element struct {
	Value float64
	Flag  int
}

// OK reports whether the measurement passed upstream quality control.
func (e *Element) OK() bool {
	return e != nil && e.Flag == 0
}

// UnmarshalJSON decodes the [value, flag] array form. A null value (JMA uses
// [null, 6] for unavailable elements) leaves the zero value with the flag set.
func (e *Element) UnmarshalJSON(data []byte) error {
	var pair []*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode element: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode element: want 2 values, got %d", len(pair))
	}
	*e = Element{}
	if pair[1] != nil {
		e.Flag = int(*pair[1])
	}
	if pair[0] == nil {
		// Missing measurement; force the element invalid even when the
		// upstream flag claims otherwise.
		if e.Flag == 0 {
			e.Flag = -1
		}
		return nil
	}
	e.Value = *pair[0]
	return nil
}

// MarshalJSON restores the [value, flag] array form.
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{e.Value, float64(e.Flag)})
}

// RawObservation is one timestamp's record inside an AMeDAS point file.
// Pointer fields are nil when the station does not report the element.
type RawObservation struct {
	Pressure         *Element `json:"pressure"`
	Temp             *Element `json:"temp"`
	Humidity         *Element `json:"humidity"`
	Visibility       *Element `json:"visibility"`
	Precipitation10m *Element `json:"precipitation10m"`
	Snow1h           *Element `json:"snow1h"`
	Wind             *Element `json:"wind"`
	WindDirection    *Element `json:"windDirection"`
	Weather          *Element `json:"weather"`
}

// Observation is a decoded point file: every record the file holds, keyed by
// its "YYYYMMDDHHMMSS" JST timestamp.
type Observation struct {
	Station string
	Records map[string]RawObservation
}

// ObservationEvent is the enriched representation destined for the sink
// topic and the storage adapter.
type ObservationEvent struct {
	ID         string    `json:"id"`
	Station    string    `json:"station"`
	ObservedAt time.Time `json:"observed_at"`

	PressureHPa        *float64 `json:"pressure_hpa,omitempty"`
	TempC              *float64 `json:"temp_c,omitempty"`
	HumidityPercent    *float64 `json:"humidity_percent,omitempty"`
	VisibilityM        *float64 `json:"visibility_m,omitempty"`
	Precipitation10mMM *float64 `json:"precipitation_10m_mm,omitempty"`
	Snow1hCM           *float64 `json:"snow_1h_cm,omitempty"`
	WindMPS            *float64 `json:"wind_mps,omitempty"`

	WindDirection int    `json:"wind_direction"` // 16-point compass index, 0 = calm
	WindCompass   string `json:"wind_compass"`
	WindArrow     string `json:"wind_arrow"`

	// Weather-code enrichment. WeatherCode is 31 (missing observation)
	// when the station reported no usable weather element.
	WeatherCode  int               `json:"weather_code"`
	Weather      string            `json:"weather"`
	WeatherEN    string            `json:"weather_en"`
	Icons        map[string]string `json:"icons,omitempty"` // icon set -> URL
	SlackEmoji   string            `json:"slack_emoji"`
	DiscordEmoji string            `json:"discord_emoji"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}
