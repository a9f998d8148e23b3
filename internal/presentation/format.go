// Package presentation turns a lookup state into what the widget displays.
package presentation

import (
	"fmt"
	"math"
	"time"
)

const iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// FormatTemperature rounds to the nearest integer, halves upward: 21.6 is "22°C",
// -0.4 is "0°C" and -2.5 is "-2°C".
func FormatTemperature(celsius float64) string {
	return fmt.Sprintf("%d°C", int(math.Floor(celsius+0.5)))
}

// FormatTime renders a provider timestamp as a 24-hour clock in loc.
func FormatTime(timestampSeconds int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(timestampSeconds, 0).In(loc).Format("15:04")
}

func IconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf(iconURLTemplate, code)
}
