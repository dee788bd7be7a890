package weathercode

import "fmt"

// IconSet identifies one of the icon collections published for the
// automatic-observation weather codes. Each set is hosted by a different
// provider; this package only builds URLs and never fetches them.
type IconSet string

const (
	// IconSetSymbol is the JMA bitmap observation symbol set shown on the
	// AMeDAS map view.
	IconSetSymbol IconSet = "symbol"

	// IconSetSVGDay and IconSetSVGNight are the JMA forecast SVG icons,
	// addressed by the telop number assigned to each weather code.
	IconSetSVGDay   IconSet = "svg-day"
	IconSetSVGNight IconSet = "svg-night"

	// IconSetPNG is a third-party PNG mirror of the observation symbols.
	IconSetPNG IconSet = "png"
)

const (
	symbolURLFormat      = "https://www.jma.go.jp/bosai/amedas/img/weather%d.png"
	forecastSVGURLFormat = "https://www.jma.go.jp/bosai/forecast/img/%d.svg"
	pngURLFormat         = "https://cdn.jsdelivr.net/gh/kumorigo/amedas-icons@v1/png/%d.png"
)

// IconSets lists the supported sets in documentation order.
func IconSets() []IconSet {
	return []IconSet{IconSetSymbol, IconSetSVGDay, IconSetSVGNight, IconSetPNG}
}

// IconURL builds the icon URL for code in the given set. It fails with
// ErrNotFound when the code is outside 0-31, when the code has no icon in any
// set (17-31), or when the set itself is unknown.
func IconURL(code int, set IconSet) (string, error) {
	entry, err := Lookup(code)
	if err != nil {
		return "", err
	}
	return entry.IconURL(set)
}

// IconURL builds the icon URL for the entry in the given set. Reserved and
// sentinel codes have no icons in any set.
func (e Entry) IconURL(set IconSet) (string, error) {
	if !e.Defined() {
		return "", fmt.Errorf("code %d has no icons: %w", e.Code, ErrNotFound)
	}
	switch set {
	case IconSetSymbol:
		return fmt.Sprintf(symbolURLFormat, e.Code), nil
	case IconSetSVGDay:
		return fmt.Sprintf(forecastSVGURLFormat, e.dayTelop), nil
	case IconSetSVGNight:
		return fmt.Sprintf(forecastSVGURLFormat, e.nightTelop), nil
	case IconSetPNG:
		return fmt.Sprintf(pngURLFormat, e.Code), nil
	default:
		return "", fmt.Errorf("icon set %q: %w", set, ErrNotFound)
	}
}

// IconURLs returns the URLs for every supported set, keyed by set name.
// The map is empty for codes without icons.
func (e Entry) IconURLs() map[IconSet]string {
	urls := make(map[IconSet]string, 4)
	for _, set := range IconSets() {
		if u, err := e.IconURL(set); err == nil {
			urls[set] = u
		}
	}
	return urls
}
