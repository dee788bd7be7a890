package domain

import (
	"fmt"
	"strings"
	"time"
)

// Upstream AMeDAS endpoints. This service never fetches them; the URLs are
// built for the collector and for consumers that do their own HTTP.
const (
	pointDataBaseURL = "https://www.jma.go.jp/bosai/amedas/data/point"

	// LatestTimeURL serves a single RFC 3339 line naming the most recent
	// observation time available upstream.
	LatestTimeURL = "https://www.jma.go.jp/bosai/amedas/data/latest_time.txt"

	// StationTableURL serves the station metadata table.
	StationTableURL = "https://www.jma.go.jp/bosai/amedas/const/amedastable.json"
)

// DataURL builds the point-file URL covering the given observation time for
// a station. Point files are bucketed in three-hour blocks, so the hour is
// rounded down to a multiple of three:
//
//	DataURL("14163", 2025-10-10T02:15:35+09:00)
//	  -> https://www.jma.go.jp/bosai/amedas/data/point/14163/20251010_00.json
func DataURL(station string, observed time.Time) string {
	observed = observed.In(jst)
	bucket := observed.Hour() / 3 * 3
	return fmt.Sprintf("%s/%s/%s_%02d.json", pointDataBaseURL, station, observed.Format("20060102"), bucket)
}

// ParseLatestTime parses the contents of latest_time.txt.
func ParseLatestTime(s string) (time.Time, error) {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse latest time: %w", err)
	}
	return t, nil
}
