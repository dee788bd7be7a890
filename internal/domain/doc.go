// Package domain models Japan Meteorological Agency (JMA) AMeDAS
// observation data.
//
// # Data Source
//
// Observations originate from the JMA "bosai" endpoints. The upstream
// collector service polls latest_time.txt, fetches the per-station point
// files, and publishes each file unmodified to the Kafka source topic with
// the station number as the message key. This package never fetches those
// URLs itself; it only decodes payloads the collector already holds and
// builds URLs for consumers that do their own HTTP.
//
//	latest observation time:  https://www.jma.go.jp/bosai/amedas/data/latest_time.txt
//	station table:            https://www.jma.go.jp/bosai/amedas/const/amedastable.json
//	point data:               https://www.jma.go.jp/bosai/amedas/data/point/{station}/{yyyymmdd}_{hh}.json
//
// Point files are bucketed in three-hour blocks, so {hh} is one of
// 00, 03, 06, 09, 12, 15, 18, 21. See [DataURL].
//
// # JMA Data Conventions
//
// A point file is a JSON object keyed by observation time in the form
// "YYYYMMDDHHMMSS" (Japan Standard Time). Every element inside a record is a
// two-value array of measurement and quality flag:
//
//	"temp":          [0.4, 0]     degrees Celsius
//	"pressure":      [1005.1, 0]  hPa
//	"humidity":      [69, 0]      percent
//	"visibility":    [20000, 0]   meters
//	"precipitation10m": [0.0, 0]  millimeters over 10 minutes
//	"snow1h":        [1, 0]       centimeters over 1 hour
//	"wind":          [2.3, 0]     meters per second
//	"windDirection": [14, 0]      16-point compass index, 0 = calm
//	"weather":       [0, 0]       automatic-observation weather code 0-31
//
// A quality flag other than zero marks the measurement as suspect and the
// element is dropped during enrichment. The weather and snow1h elements are
// only reported on some timestamps within a file; the most recent timestamp
// carrying them supplies the values for the latest observation.
//
// Weather codes are decoded through the public weathercode package, which
// owns the code-to-description and code-to-icon tables.
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 hashes of station|observation-time.
// Reprocessing the same point file produces the same IDs, which keeps
// downstream upserts idempotent and replays safe. See [generateID].
package domain
