package models

import "time"

// HolidayRecord is the aggregate of every holiday row sharing one calendar date
type HolidayRecord struct {
	Day     int
	Month   int
	Year    int
	Holiday *bool // first non-empty flag in the group, nil when none was given
	Events  []string
}

// SolarForecast is a monthly solar generation forecast
type SolarForecast struct {
	MonthStart time.Time
	TotalKWh   float64
}

// RealEstateForecast is a quarterly real-estate price forecast
type RealEstateForecast struct {
	QuarterDate time.Time
	Low         float64
	High        float64
	Average     float64
	QoQ         float64 // quarter-over-quarter change in percent
}

// DayKind classifies a calendar date for the demand model
type DayKind int

const (
	NotHoliday DayKind = iota
	Holiday
	Weekend
)

func (k DayKind) String() string {
	switch k {
	case Holiday:
		return "holiday"
	case Weekend:
		return "weekend"
	default:
		return "not_holiday"
	}
}

// DayType is the resolved holiday status of a date. Event carries the reason
// text for explicit holiday rows; it may also be set on a NotHoliday date when
// the table lists an observance that is not a day off.
type DayType struct {
	Kind  DayKind
	Event string
}

// Flag is the 0/1 holiday indicator the model was trained on
func (d DayType) Flag() int {
	if d.Kind == Holiday || d.Kind == Weekend {
		return 1
	}
	return 0
}

// Label is the event text the model was trained on
func (d DayType) Label() string {
	if d.Kind == Weekend {
		return "Weekend"
	}
	if d.Event == "" {
		return "No"
	}
	return d.Event
}
