// Command validate performs offline integrity checks on JMA data files: the
// built-in weather-code table, AMeDAS point files, and optionally a forecast
// document and the area hierarchy. It runs the real enrichment path so the
// checks match pipeline behavior.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -point-dir internal/pipeline/testdata \
//	  -forecast forecast_020000.json \
//	  -area area.json
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kumorigo/amedas-etl/internal/area"
	"github.com/kumorigo/amedas-etl/internal/domain"
	"github.com/kumorigo/amedas-etl/internal/forecast"
	"github.com/kumorigo/amedas-etl/weathercode"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	pointDir := flag.String("point-dir", "", "directory containing point_<station>.json files")
	forecastPath := flag.String("forecast", "", "optional path to a forecast document JSON")
	areaPath := flag.String("area", "", "optional path to an area hierarchy JSON")
	flag.Parse()

	if *pointDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*pointDir, *forecastPath, *areaPath); code != 0 {
		os.Exit(code)
	}
}

func run(pointDir, forecastPath, areaPath string) int {
	// Fix the clock so repeated runs produce identical ProcessedAt values.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.November, 18, 2, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== AMeDAS Data Integrity Validation ===")
	fmt.Println()

	phases := []*phase{
		validateCodeTable(),
		validatePointFiles(pointDir),
	}
	if forecastPath != "" {
		phases = append(phases, validateForecast(forecastPath))
	}
	if areaPath != "" {
		phases = append(phases, validateAreas(areaPath))
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Weather-code table ──
// Validates the invariants the rest of the system relies on.

func validateCodeTable() *phase {
	p := &phase{name: "Phase 1: Weather-code table"}

	entries := weathercode.All()
	if len(entries) != weathercode.MaxCode+1 {
		p.errorf("table has %d entries, want %d", len(entries), weathercode.MaxCode+1)
	}

	for _, entry := range entries {
		switch {
		case entry.Code <= 16:
			if !entry.Defined() {
				p.errorf("code %d: should be defined", entry.Code)
			}
			if entry.Description == "" || entry.DescriptionEN == "" {
				p.errorf("code %d: missing description", entry.Code)
			}
			if urls := entry.IconURLs(); len(urls) != len(weathercode.IconSets()) {
				p.errorf("code %d: %d icon URLs, want %d", entry.Code, len(urls), len(weathercode.IconSets()))
			}
		case entry.Code <= 29:
			if !entry.Reserved() {
				p.errorf("code %d: should be reserved", entry.Code)
			}
			if urls := entry.IconURLs(); len(urls) != 0 {
				p.errorf("code %d: reserved code has %d icon URLs", entry.Code, len(urls))
			}
		default:
			if entry.Defined() {
				p.errorf("code %d: sentinel should not be defined", entry.Code)
			}
		}
	}

	if u, err := weathercode.IconURL(0, weathercode.IconSetSVGDay); err != nil {
		p.errorf("code 0 svg-day: %v", err)
	} else if !strings.HasSuffix(u, "100.svg") {
		p.errorf("code 0 svg-day URL %q does not end in 100.svg", u)
	}

	if _, err := weathercode.Lookup(-1); err == nil {
		p.errorf("lookup(-1) should fail")
	}
	if _, err := weathercode.Lookup(weathercode.MaxCode + 1); err == nil {
		p.errorf("lookup(%d) should fail", weathercode.MaxCode+1)
	}

	return p
}

// ── Phase 2: Point files ──
// Runs every point file in the directory through the real enrichment path.

func validatePointFiles(dir string) *phase {
	p := &phase{name: "Phase 2: Point-file enrichment"}

	paths, err := filepath.Glob(filepath.Join(dir, "point_*.json"))
	if err != nil || len(paths) == 0 {
		p.errorf("no point_*.json files found in %s", dir)
		return p
	}

	for _, path := range paths {
		station := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), "point_"), ".json")
		data, err := os.ReadFile(path)
		if err != nil {
			p.errorf("%s: %v", path, err)
			continue
		}

		obs, err := domain.ParseRawMessage(domain.RawMessage{Key: []byte(station), Value: data})
		if err != nil {
			p.errorf("%s: %v", path, err)
			continue
		}

		event, err := domain.EnrichObservation(obs, data)
		if err != nil {
			p.errorf("%s: %v", path, err)
			continue
		}

		checkEvent(p, station, event)
		fmt.Printf("  %s: %s (%d) at %s, %d records\n",
			station, event.Weather, event.WeatherCode,
			event.ObservedAt.Format(time.RFC3339), len(obs.Records))
	}

	return p
}

func checkEvent(p *phase, station string, event domain.ObservationEvent) {
	if event.Station != station {
		p.errorf("%s: event station %q mismatch", station, event.Station)
	}
	if !strings.HasPrefix(event.ID, station+"-") {
		p.errorf("%s: ID %q missing station prefix", station, event.ID)
	}
	if event.ObservedAt.IsZero() {
		p.errorf("%s: observed_at is zero", station)
	}
	if event.WeatherCode < 0 || event.WeatherCode > weathercode.MaxCode {
		p.errorf("%s: weather code %d out of range", station, event.WeatherCode)
	}
	if event.Weather == "" || event.WeatherEN == "" {
		p.errorf("%s: missing weather description", station)
	}
	if event.WindDirection < 0 || event.WindDirection > 16 {
		p.errorf("%s: wind direction %d out of range", station, event.WindDirection)
	}
	if event.ProcessedAt.IsZero() {
		p.errorf("%s: processed_at is zero", station)
	}

	entry, err := weathercode.Lookup(event.WeatherCode)
	if err != nil {
		p.errorf("%s: lookup %d: %v", station, event.WeatherCode, err)
		return
	}
	if entry.Defined() && len(event.Icons) == 0 {
		p.errorf("%s: defined code %d has no icons on event", station, event.WeatherCode)
	}
	if !entry.Defined() && len(event.Icons) != 0 {
		p.errorf("%s: code %d should carry no icons", station, event.WeatherCode)
	}
}

// ── Phase 3: Forecast document ──

func validateForecast(path string) *phase {
	p := &phase{name: "Phase 3: Forecast document"}

	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("%s: %v", path, err)
		return p
	}

	doc, err := forecast.ParseDocument(data)
	if err != nil {
		p.errorf("%s: %v", path, err)
		return p
	}

	points := doc.TemperaturePoints()
	if len(points) == 0 {
		p.errorf("%s: no temperature points", path)
		return p
	}

	now := time.Now()
	for _, point := range points {
		peak, err := doc.PeakTemperatures(point.Area.Code, now)
		if err != nil {
			p.errorf("point %s: %v", point.Area.Code, err)
			continue
		}
		name := peak.AreaName
		if current, ok := forecast.CurrentCityName(name); ok {
			name = current
		}
		fmt.Printf("  %s (%s): high %s, low %s\n", name, point.Area.Code, peak.Highest, peak.Lowest)
	}

	return p
}

// ── Phase 4: Area hierarchy ──

func validateAreas(path string) *phase {
	p := &phase{name: "Phase 4: Area hierarchy"}

	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("%s: %v", path, err)
		return p
	}

	areas, err := area.ParseAreas(data)
	if err != nil {
		p.errorf("%s: %v", path, err)
		return p
	}

	// Every class20s must climb to an office through the class hierarchy.
	for _, a := range areas.SearchClass20s("") {
		if _, ok := areas.Ancestor(a, area.ClassOffices); !ok {
			p.errorf("class20s %s (%s): no office ancestor", a.Code, a.Name)
		}
	}

	return p
}
