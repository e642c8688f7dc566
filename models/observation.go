package models

import "fmt"

// RawObservation is one hourly row as scraped from the forecast page, before any parsing
type RawObservation struct {
	SourceKey string // the page's hd=YYYYMMDD parameter

	Year  int
	Month int
	Day   int
	Hour  int

	TemperatureText string // e.g. "75 °F" or "24 °C"
	Condition       string // e.g. "Passing clouds."
	WindText        string // e.g. "11 km/h" or "7 mph"
	HumidityText    string // e.g. "48%"
	RainfallText    string // e.g. "0.3 mm (rain)" or "-"
}

// DateKey formats the observation date as YYYY-MM-DD
func (o RawObservation) DateKey() string {
	return fmt.Sprintf("%04d-%02d-%02d", o.Year, o.Month, o.Day)
}
