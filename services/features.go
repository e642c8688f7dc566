package services

import (
	"math"
	"time"

	"demand-forecaster/config"
	"demand-forecaster/models"
	"demand-forecaster/reference"
	"demand-forecaster/utils"
)

// Cyclic encoding periods. Day of year always uses 365, so 31 December of a
// leap year lands just past a full turn.
const (
	HoursPerDay     = 24
	DaysPerWeek     = 7
	MonthsPerYear   = 12
	DayOfYearPeriod = 365
)

// ReferenceData is the lookup surface the builder needs from the reference tables
type ReferenceData interface {
	LookupHoliday(day, month, year int) models.DayType
	LookupSolar(year, month int) (float64, error)
	LookupRealEstate(year, quarter int) (models.RealEstateForecast, error)
}

// FeatureBuilder derives model inputs from scraped observations
type FeatureBuilder struct {
	ref    ReferenceData
	wind   config.WindPolicy
	logger *utils.Logger
}

// NewFeatureBuilder creates a new FeatureBuilder
func NewFeatureBuilder(ref ReferenceData, wind config.WindPolicy, logger *utils.Logger) *FeatureBuilder {
	return &FeatureBuilder{ref: ref, wind: wind, logger: logger}
}

// Build turns one scraped hour into a feature vector. It has no side effects;
// parse failures return *models.ParseError and missing reference rows
// *models.LookupError.
func (b *FeatureBuilder) Build(raw models.RawObservation) (*models.FeatureVector, error) {
	date := time.Date(raw.Year, time.Month(raw.Month), raw.Day, 0, 0, 0, 0, time.UTC)
	if date.Year() != raw.Year || int(date.Month()) != raw.Month || date.Day() != raw.Day {
		return nil, &models.ParseError{Field: "date", Text: raw.DateKey()}
	}
	if raw.Hour < 0 || raw.Hour >= HoursPerDay {
		return nil, &models.ParseError{Field: "hour", Text: raw.DateKey()}
	}
	weekday := MondayFirst(date.Weekday())
	dayOfYear := date.YearDay()

	temp, err := ParseTemperature(raw.TemperatureText)
	if err != nil {
		return nil, err
	}

	wind, err := ParseWind(raw.WindText, b.wind)
	if err != nil {
		return nil, err
	}
	if wind == 0 && raw.WindText != "" && b.logger != nil {
		b.logger.Debug("Wind %q on %s %02d:00 recorded as 0 km/h", raw.WindText, raw.DateKey(), raw.Hour)
	}

	humidity, err := ParseHumidity(raw.HumidityText)
	if err != nil {
		return nil, err
	}

	solar, err := b.ref.LookupSolar(raw.Year, raw.Month)
	if err != nil {
		return nil, err
	}
	prices, err := b.ref.LookupRealEstate(raw.Year, reference.Quarter(raw.Month))
	if err != nil {
		return nil, err
	}

	fv := &models.FeatureVector{
		Weekday:         weekday,
		Temperature:     temp,
		Condition:       CleanCondition(raw.Condition),
		Humidity:        humidity,
		WindSpeed:       wind,
		DayType:         b.ref.LookupHoliday(raw.Day, raw.Month, raw.Year),
		Rainfall:        ParseRainfall(raw.RainfallText),
		SolarGeneration: utils.Round(solar, 2),
		LowPrice:        utils.Round(prices.Low, 2),
		HighPrice:       utils.Round(prices.High, 2),
		AveragePrice:    utils.Round(prices.Average, 2),
		QoQPriceChange:  utils.Round(prices.QoQ, 2),
		Day:             raw.Day,
		Month:           raw.Month,
		Year:            raw.Year,
		DayOfYear:       dayOfYear,
		Hour:            raw.Hour,
		TempXHour:       utils.Round(temp, 2) * float64(raw.Hour),
	}
	fv.HourSin, fv.HourCos = CyclicEncode(raw.Hour, HoursPerDay)
	fv.WeekdaySin, fv.WeekdayCos = CyclicEncode(weekday, DaysPerWeek)
	fv.MonthSin, fv.MonthCos = CyclicEncode(raw.Month, MonthsPerYear)
	fv.DayOfYearSin, fv.DayOfYearCos = CyclicEncode(dayOfYear, DayOfYearPeriod)

	return fv, nil
}

// CyclicEncode maps a periodic value onto the unit circle
func CyclicEncode(value, period int) (sin, cos float64) {
	angle := 2 * math.Pi * float64(value) / float64(period)
	return math.Sin(angle), math.Cos(angle)
}

// MondayFirst renumbers a weekday so Monday is 0 and Sunday is 6
func MondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
