package area

import (
	"encoding/json"
	"fmt"
)

// ForecastAreaURL is where the upstream agency hosts the forecast-area index.
const ForecastAreaURL = "https://www.jma.go.jp/bosai/forecast/const/forecast_area.json"

// Site links one class10 forecast region to the AMeDAS stations that
// represent it and the class20 municipality it reports under.
type Site struct {
	Class10 string   `json:"class10"`
	Amedas  []string `json:"amedas"`
	Class20 string   `json:"class20"`
}

// ForecastAreaIndex is the decoded forecast_area.json document: sites
// grouped by forecast office code.
type ForecastAreaIndex struct {
	Offices map[string][]Site
}

// ParseForecastArea decodes a forecast_area.json document.
func ParseForecastArea(data []byte) (*ForecastAreaIndex, error) {
	var offices map[string][]Site
	if err := json.Unmarshal(data, &offices); err != nil {
		return nil, fmt.Errorf("parse forecast area: %w", err)
	}
	if len(offices) == 0 {
		return nil, fmt.Errorf("parse forecast area: no offices")
	}
	return &ForecastAreaIndex{Offices: offices}, nil
}

// AmedasByClass10 returns the AMeDAS stations representing a class10 region.
func (f *ForecastAreaIndex) AmedasByClass10(code string) ([]string, bool) {
	for _, sites := range f.Offices {
		for _, site := range sites {
			if site.Class10 == code {
				return site.Amedas, true
			}
		}
	}
	return nil, false
}

// OfficeByAmedas returns the forecast office covering an AMeDAS station.
func (f *ForecastAreaIndex) OfficeByAmedas(station string) (string, bool) {
	for office, sites := range f.Offices {
		for _, site := range sites {
			for _, s := range site.Amedas {
				if s == station {
					return office, true
				}
			}
		}
	}
	return "", false
}
