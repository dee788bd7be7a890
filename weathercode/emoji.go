package weathercode

// EmojiFlavor selects the emoji alias dialect for chat integrations.
type EmojiFlavor int

const (
	EmojiSlack EmojiFlavor = iota
	EmojiDiscord
)

// emojiFallback is used for reserved and sentinel codes, and for any code the
// tables do not cover.
const emojiFallback = ":construction:"

var slackEmoji = [maxDefined + 1]string{
	0:  ":sunny:",
	1:  ":cloud:",
	2:  ":fog:",
	3:  ":foggy:",
	4:  ":umbrella_with_rain_drops:",
	5:  ":umbrella_with_rain_drops:",
	6:  ":umbrella_with_rain_drops:",
	7:  ":umbrella_with_rain_drops:",
	8:  ":snowflake:",
	9:  ":snow_cloud:",
	10: ":snow_cloud:",
	11: ":snow_cloud:",
	12: ":snow_cloud:",
	13: ":partly_sunny_rain:",
	14: ":snow_cloud:",
	15: ":snowflake:",
	16: ":lightning:",
}

var discordEmoji = [maxDefined + 1]string{
	0:  ":sunny:",
	1:  ":cloud:",
	2:  ":fog:",
	3:  ":foggy:",
	4:  ":umbrella:",
	5:  ":umbrella:",
	6:  ":umbrella:",
	7:  ":umbrella:",
	8:  ":snowflake:",
	9:  ":cloud_snow:",
	10: ":cloud_snow:",
	11: ":cloud_snow:",
	12: ":cloud_snow:",
	13: ":white_sun_rain_cloud:",
	14: ":cloud_snow:",
	15: ":snowflake:",
	16: ":thunder_cloud_rain:",
}

// Emoji returns the chat emoji alias for code in the requested flavor.
// Codes without a defined weather condition fall back to :construction:,
// mirroring how the upstream documentation marks unmapped codes.
func Emoji(code int, flavor EmojiFlavor) string {
	if code < 0 || code > maxDefined {
		return emojiFallback
	}
	if flavor == EmojiDiscord {
		return discordEmoji[code]
	}
	return slackEmoji[code]
}
