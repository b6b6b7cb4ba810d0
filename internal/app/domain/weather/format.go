package weather

import (
	"fmt"
	"math"
	"time"
)

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection names the eight-point compass direction of a bearing.
func WindDirection(deg int) string {
	idx := int(math.Floor(float64(deg)/45+0.5)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}

// IconURL returns the provider's 2x icon image for an icon code.
func IconURL(icon string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}

var conditionEmoji = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
	"Smoke":        "🌫️",
	"Dust":         "🌪️",
	"Sand":         "🌪️",
	"Tornado":      "🌪️",
}

// ConditionEmoji maps a condition group to an emoji, thermometer otherwise.
func ConditionEmoji(condition string) string {
	if e, ok := conditionEmoji[condition]; ok {
		return e
	}
	return "🌡️"
}

// FormatLocalTime renders an epoch timestamp as HH:MM at the given UTC offset.
func FormatLocalTime(unix int64, offsetSeconds int) string {
	return time.Unix(unix+int64(offsetSeconds), 0).UTC().Format("15:04")
}
