package domain

import "github.com/jonboulle/clockwork"

// clock supplies ProcessedAt timestamps during enrichment. Production code
// uses the real clock; tests inject a fake for deterministic events.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
