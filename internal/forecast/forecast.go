// Package forecast decodes and queries JMA forecast documents
// ({office}.json). Documents are supplied as bytes by the caller; this
// package builds URLs but never fetches them.
package forecast

import (
	"encoding/json"
	"fmt"
	"time"
)

const forecastBaseURL = "https://www.jma.go.jp/bosai/forecast/data/forecast"

// officeURLOverrides lists office codes whose forecast file is published
// under a different code. Requesting the listed key returns 404 upstream.
var officeURLOverrides = map[string]string{
	"014030": "014100", // 十勝地方
	"460040": "460100", // 奄美地方
}

// URLForOffice builds the forecast document URL for a forecast office,
// applying the upstream code overrides.
func URLForOffice(office string) string {
	if override, ok := officeURLOverrides[office]; ok {
		office = override
	}
	return fmt.Sprintf("%s/%s.json", forecastBaseURL, office)
}

// AreaRef names a region inside a time series.
type AreaRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// AreaSeries carries the per-region value arrays of one time series. Which
// arrays are populated depends on the series: the short-range series has
// weathers/winds/waves, the precipitation series has pops, the temperature
// series has temps.
type AreaSeries struct {
	Area         AreaRef  `json:"area"`
	WeatherCodes []string `json:"weatherCodes"`
	Weathers     []string `json:"weathers"`
	Winds        []string `json:"winds"`
	Waves        []string `json:"waves"`
	Pops         []string `json:"pops"`
	Temps        []string `json:"temps"`
}

// TimeSeries pairs value arrays with the times they apply to.
type TimeSeries struct {
	TimeDefines []string     `json:"timeDefines"`
	Areas       []AreaSeries `json:"areas"`
}

// Report is one of the two entries of a forecast document: the short-range
// report and the weekly report.
type Report struct {
	PublishingOffice string       `json:"publishingOffice"`
	ReportDatetime   string       `json:"reportDatetime"`
	TimeSeries       []TimeSeries `json:"timeSeries"`
}

// Document is a decoded forecast file.
type Document struct {
	Reports []Report
}

// ParseDocument decodes a forecast {office}.json document.
func ParseDocument(data []byte) (*Document, error) {
	var reports []Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("parse forecast: %w", err)
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("parse forecast: empty document")
	}
	return &Document{Reports: reports}, nil
}

// TemperaturePoints returns the temperature series of the short-range
// report: one entry per AMeDAS observation point.
func (d *Document) TemperaturePoints() []AreaSeries {
	series, ok := d.temperatureSeries()
	if !ok {
		return nil
	}
	return series.Areas
}

func (d *Document) temperatureSeries() (TimeSeries, bool) {
	if len(d.Reports) == 0 || len(d.Reports[0].TimeSeries) < 3 {
		return TimeSeries{}, false
	}
	return d.Reports[0].TimeSeries[2], true
}

// PeakTemperature is the expected low and high for one observation point.
type PeakTemperature struct {
	ReportDatetime  string
	AreaName        string
	AreaCode        string
	Lowest          string
	LowestDatetime  string
	Highest         string
	HighestDatetime string
}

// PeakTemperatures extracts the low/high forecast for an observation point.
// The temperature series carries [today's high, tonight's low, tomorrow's
// high] when published during the day and [tonight's low, tomorrow's high]
// otherwise, so the indices depend on the local hour of now (05:00-16:59 is
// treated as day). now must be in Japan Standard Time.
func (d *Document) PeakTemperatures(areaCode string, now time.Time) (PeakTemperature, error) {
	series, ok := d.temperatureSeries()
	if !ok {
		return PeakTemperature{}, fmt.Errorf("peak temperatures: no temperature series")
	}

	lowestIndex, highestIndex := 0, 1
	if hour := now.Hour(); hour >= 5 && hour < 17 {
		lowestIndex, highestIndex = 2, 0
	}
	if len(series.TimeDefines) <= lowestIndex || len(series.TimeDefines) <= highestIndex {
		return PeakTemperature{}, fmt.Errorf("peak temperatures: series too short")
	}

	for _, as := range series.Areas {
		if as.Area.Code != areaCode {
			continue
		}
		if len(as.Temps) <= lowestIndex || len(as.Temps) <= highestIndex {
			return PeakTemperature{}, fmt.Errorf("peak temperatures: point %s has %d temps", areaCode, len(as.Temps))
		}
		return PeakTemperature{
			ReportDatetime:  d.Reports[0].ReportDatetime,
			AreaName:        as.Area.Name,
			AreaCode:        as.Area.Code,
			Lowest:          as.Temps[lowestIndex],
			LowestDatetime:  series.TimeDefines[lowestIndex],
			Highest:         as.Temps[highestIndex],
			HighestDatetime: series.TimeDefines[highestIndex],
		}, nil
	}
	return PeakTemperature{}, fmt.Errorf("peak temperatures: point %s not in document", areaCode)
}
