package forecast

import "strings"

// DefaultWeatherCode is used for descriptions outside the closed mapping,
// treated as plain overcast.
const DefaultWeatherCode = 3

// weatherCodeByDescription maps the provider's free-text weather descriptions
// to the ordinal severity/clarity classes the models were trained on:
// 1 precipitation, 2 heavily overcast, 3 default, 4 partly cloudy, 5 clear.
var weatherCodeByDescription = map[string]int{
	"thunderstorm":     1,
	"drizzle":          1,
	"rain":             1,
	"light rain":       1,
	"moderate rain":    1,
	"shower rain":      1,
	"overcast clouds":  2,
	"broken clouds":    2,
	"scattered clouds": 3,
	"few clouds":       4,
	"clear sky":        5,
}

// CodeForDescription resolves a weather description to its ordinal code,
// case-insensitively, defaulting for anything unmapped.
func CodeForDescription(description string) int {
	key := strings.ToLower(strings.TrimSpace(description))
	if code, ok := weatherCodeByDescription[key]; ok {
		return code
	}
	return DefaultWeatherCode
}
