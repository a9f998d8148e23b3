package models

import "time"

// CurrentConditions is the normalized current weather of one location.
type CurrentConditions struct {
	LocationName   string  `json:"location_name" example:"Paris"`
	Temperature    float64 `json:"temperature" example:"21.6"`
	MinTemperature float64 `json:"min_temperature" example:"19.2"`
	MaxTemperature float64 `json:"max_temperature" example:"23.8"`
	Description    string  `json:"description" example:"ciel dégagé"`
	IconCode       string  `json:"icon_code" example:"01d"`
}

// ForecastEntry is a single 3-hour step of the provider forecast.
type ForecastEntry struct {
	TimestampSeconds int64   `json:"timestamp_seconds" example:"1753455600"`
	Temperature      float64 `json:"temperature" example:"22.5"`
	Description      string  `json:"description" example:"nuageux"`
	IconCode         string  `json:"icon_code" example:"04d"`
}

func (f ForecastEntry) Time() time.Time {
	return time.Unix(f.TimestampSeconds, 0)
}
