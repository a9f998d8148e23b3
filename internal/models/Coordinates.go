package models

import "fmt"

type Coordinates struct {
	Latitude  float64 `json:"latitude" example:"48.8566"`
	Longitude float64 `json:"longitude" example:"2.3522"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", c.Latitude, c.Longitude)
}
