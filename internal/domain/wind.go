package domain

// AMeDAS reports wind direction as a 16-point compass index where 0 means
// calm and 16 is due north. Both tables therefore carry 17 entries.

var windCompass = [17]string{
	"--",  // 0: calm
	"NNE", // 1
	"NE",  // 2
	"ENE", // 3
	"E",   // 4
	"ESE", // 5
	"SE",  // 6
	"SSE", // 7
	"S",   // 8
	"SSW", // 9
	"SW",  // 10
	"WSW", // 11
	"W",   // 12
	"WNW", // 13
	"NW",  // 14
	"NNW", // 15
	"N",   // 16
}

// windArrow points where the wind blows toward, matching the arrows the JMA
// site renders next to each station.
var windArrow = [17]string{
	"・", // 0: calm
	"⇙", // 1
	"⇙", // 2
	"⇐", // 3
	"⇐", // 4
	"⇖", // 5
	"⇖", // 6
	"⇑", // 7
	"⇑", // 8
	"⇗", // 9
	"⇗", // 10
	"⇒", // 11
	"⇒", // 12
	"⇘", // 13
	"⇘", // 14
	"⇓", // 15
	"⇓", // 16
}

// WindCompass returns the compass-point label for a wind direction index.
// Out-of-range indices report calm.
func WindCompass(direction int) string {
	if direction < 0 || direction >= len(windCompass) {
		return windCompass[0]
	}
	return windCompass[direction]
}

// WindArrow returns the arrow glyph for a wind direction index.
func WindArrow(direction int) string {
	if direction < 0 || direction >= len(windArrow) {
		return windArrow[0]
	}
	return windArrow[direction]
}
