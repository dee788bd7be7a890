// Package weathercode maps the Japan Meteorological Agency (JMA)
// automatic-observation weather codes (0-31) to human-readable descriptions
// and icon URLs across the icon sets the agency and third parties publish.
//
// The table is fixed at compile time and never mutated, so every function in
// this package is safe for unrestricted concurrent use.
//
// Code assignment, per the upstream AMeDAS documentation:
//
//	 0-16  defined weather conditions (晴 through 雷)
//	17-29  reserved for future assignment, no meaning yet
//	30     weather could not be determined
//	31     observation missing
package weathercode

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for codes outside the 0-31 domain and for icon
// requests against codes that carry no icon in the requested set.
var ErrNotFound = errors.New("weathercode: not found")

const (
	// MaxCode is the highest assigned code, the missing-observation sentinel.
	MaxCode = 31

	// maxDefined is the highest code with a defined weather condition.
	maxDefined = 16

	// CodeUnknown means the station observed weather but could not classify it.
	CodeUnknown = 30

	// CodeMissing means the weather element was not observed at all.
	CodeMissing = 31
)

// Entry is one row of the weather-code table.
type Entry struct {
	Code          int    `json:"code"`
	Description   string `json:"description"`    // Japanese, as published by JMA
	DescriptionEN string `json:"description_en"` // English gloss

	// Forecast telop numbers backing the SVG icon sets. Zero for codes
	// without icons (17-31).
	dayTelop   int
	nightTelop int
}

// Defined reports whether the code denotes an actual weather condition
// (0-16), as opposed to a reserved or sentinel code.
func (e Entry) Defined() bool {
	return e.Code >= 0 && e.Code <= maxDefined
}

// Reserved reports whether the code is allocated but has no meaning yet (17-29).
func (e Entry) Reserved() bool {
	return e.Code >= maxDefined+1 && e.Code < CodeUnknown
}

// table holds all 32 entries indexed by code. Codes 0-16 are written out in
// full; the reserved range 17-29 is filled by init. The day/night telop
// numbers follow the published code-to-forecast-icon mapping (code 0 maps to
// 100.svg by day and 500.svg by night).
var table = [MaxCode + 1]Entry{
	0:  {Code: 0, Description: "晴", DescriptionEN: "clear", dayTelop: 100, nightTelop: 500},
	1:  {Code: 1, Description: "曇", DescriptionEN: "cloudy", dayTelop: 200, nightTelop: 200},
	2:  {Code: 2, Description: "煙霧", DescriptionEN: "haze", dayTelop: 200, nightTelop: 200},
	3:  {Code: 3, Description: "霧", DescriptionEN: "fog", dayTelop: 300, nightTelop: 300},
	4:  {Code: 4, Description: "降水またはしゅう雨性の降水", DescriptionEN: "precipitation", dayTelop: 300, nightTelop: 300},
	5:  {Code: 5, Description: "霧雨", DescriptionEN: "drizzle", dayTelop: 300, nightTelop: 300},
	6:  {Code: 6, Description: "雨", DescriptionEN: "rain", dayTelop: 400, nightTelop: 400},
	7:  {Code: 7, Description: "みぞれ", DescriptionEN: "sleet", dayTelop: 300, nightTelop: 300},
	8:  {Code: 8, Description: "雪", DescriptionEN: "snow", dayTelop: 400, nightTelop: 400},
	9:  {Code: 9, Description: "着氷性の雨", DescriptionEN: "freezing rain", dayTelop: 403, nightTelop: 403},
	10: {Code: 10, Description: "着氷性の霧雨", DescriptionEN: "freezing drizzle", dayTelop: 400, nightTelop: 400},
	11: {Code: 11, Description: "凍雨", DescriptionEN: "ice pellets", dayTelop: 403, nightTelop: 403},
	12: {Code: 12, Description: "霧雪", DescriptionEN: "snow grains", dayTelop: 400, nightTelop: 400},
	13: {Code: 13, Description: "しゅう雨または止み間のある雨", DescriptionEN: "rain showers", dayTelop: 302, nightTelop: 302},
	14: {Code: 14, Description: "しゅう雪または止み間のある雪", DescriptionEN: "snow showers", dayTelop: 402, nightTelop: 402},
	15: {Code: 15, Description: "ひょう", DescriptionEN: "hail", dayTelop: 400, nightTelop: 400},
	16: {Code: 16, Description: "雷", DescriptionEN: "thunder", dayTelop: 300, nightTelop: 300},

	CodeUnknown: {Code: CodeUnknown, Description: "不明", DescriptionEN: "unknown weather"},
	CodeMissing: {Code: CodeMissing, Description: "欠測", DescriptionEN: "missing observation"},
}

func init() {
	for code := maxDefined + 1; code < CodeUnknown; code++ {
		table[code] = Entry{Code: code, Description: "未定義", DescriptionEN: "pending"}
	}
}

// Lookup returns the table entry for code. It fails with ErrNotFound for
// codes outside 0-31.
func Lookup(code int) (Entry, error) {
	if code < 0 || code > MaxCode {
		return Entry{}, fmt.Errorf("code %d: %w", code, ErrNotFound)
	}
	return table[code], nil
}

// All returns every entry in code order. The slice is freshly allocated;
// callers may modify it freely.
func All() []Entry {
	entries := make([]Entry, 0, len(table))
	for _, e := range table {
		entries = append(entries, e)
	}
	return entries
}
