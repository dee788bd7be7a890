package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forecastJSON is a trimmed Aomori (020000) forecast document: short-range
// report with weather, precipitation, and temperature series.
const forecastJSON = `[
  {
    "publishingOffice": "青森地方気象台",
    "reportDatetime": "2025-03-28T17:00:00+09:00",
    "timeSeries": [
      {
        "timeDefines": ["2025-03-28T17:00:00+09:00", "2025-03-29T00:00:00+09:00", "2025-03-30T00:00:00+09:00"],
        "areas": [
          {
            "area": {"name": "津軽", "code": "020010"},
            "weatherCodes": ["200", "200", "270"],
            "weathers": ["くもり　所により　雨", "くもり", "くもり　時々　雪か雨"],
            "winds": ["西の風", "西の風", "西の風　やや強く"],
            "waves": ["１．５メートル", "２．５メートル", "１．５メートル"]
          }
        ]
      },
      {
        "timeDefines": ["2025-03-28T18:00:00+09:00", "2025-03-29T00:00:00+09:00"],
        "areas": [
          {"area": {"name": "津軽", "code": "020010"}, "pops": ["30", "10"]}
        ]
      },
      {
        "timeDefines": ["2025-03-28T09:00:00+09:00", "2025-03-29T00:00:00+09:00", "2025-03-29T09:00:00+09:00"],
        "areas": [
          {"area": {"name": "青森", "code": "31312"}, "temps": ["9", "3", "8"]},
          {"area": {"name": "むつ", "code": "31111"}, "temps": ["8", "2", "7"]}
        ]
      }
    ]
  },
  {
    "publishingOffice": "青森地方気象台",
    "reportDatetime": "2025-03-28T17:00:00+09:00",
    "timeSeries": []
  }
]`

func parseTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(forecastJSON))
	require.NoError(t, err)
	return doc
}

func TestURLForOffice(t *testing.T) {
	tests := []struct {
		name     string
		office   string
		expected string
	}{
		{"regular office", "020000", "https://www.jma.go.jp/bosai/forecast/data/forecast/020000.json"},
		{"tokachi override", "014030", "https://www.jma.go.jp/bosai/forecast/data/forecast/014100.json"},
		{"amami override", "460040", "https://www.jma.go.jp/bosai/forecast/data/forecast/460100.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, URLForOffice(tt.office))
		})
	}
}

func TestParseDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := parseTestDocument(t)
		require.Len(t, doc.Reports, 2)
		assert.Equal(t, "青森地方気象台", doc.Reports[0].PublishingOffice)

		areas := doc.Reports[0].TimeSeries[0].Areas
		require.Len(t, areas, 1)
		assert.Equal(t, []string{"200", "200", "270"}, areas[0].WeatherCodes)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseDocument([]byte("{}"))
		require.Error(t, err)
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := ParseDocument([]byte("[]"))
		require.Error(t, err)
	})
}

func TestTemperaturePoints(t *testing.T) {
	doc := parseTestDocument(t)

	points := doc.TemperaturePoints()
	require.Len(t, points, 2)
	assert.Equal(t, "青森", points[0].Area.Name)
	assert.Equal(t, "31312", points[0].Area.Code)
	assert.Equal(t, []string{"9", "3", "8"}, points[0].Temps)
}

func TestPeakTemperatures(t *testing.T) {
	doc := parseTestDocument(t)
	jst := time.FixedZone("JST", 9*60*60)

	t.Run("daytime indices", func(t *testing.T) {
		now := time.Date(2025, 3, 28, 12, 0, 0, 0, jst)
		peak, err := doc.PeakTemperatures("31312", now)
		require.NoError(t, err)

		assert.Equal(t, "青森", peak.AreaName)
		assert.Equal(t, "8", peak.Lowest) // index 2
		assert.Equal(t, "2025-03-29T09:00:00+09:00", peak.LowestDatetime)
		assert.Equal(t, "9", peak.Highest) // index 0
		assert.Equal(t, "2025-03-28T09:00:00+09:00", peak.HighestDatetime)
		assert.Equal(t, "2025-03-28T17:00:00+09:00", peak.ReportDatetime)
	})

	t.Run("evening indices", func(t *testing.T) {
		now := time.Date(2025, 3, 28, 20, 0, 0, 0, jst)
		peak, err := doc.PeakTemperatures("31111", now)
		require.NoError(t, err)

		assert.Equal(t, "むつ", peak.AreaName)
		assert.Equal(t, "8", peak.Lowest)  // index 0
		assert.Equal(t, "2", peak.Highest) // index 1
	})

	t.Run("unknown point", func(t *testing.T) {
		now := time.Date(2025, 3, 28, 12, 0, 0, 0, jst)
		_, err := doc.PeakTemperatures("00000", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not in document")
	})
}

func TestCurrentCityName(t *testing.T) {
	tests := []struct {
		name     string
		old      string
		expected string
		found    bool
	}{
		{"old name", "東京", "千代田区", true},
		{"station code", "44132", "千代田区", true},
		{"island rename", "八丈島", "八丈町", true},
		{"already current", "札幌", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CurrentCityName(tt.old)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
