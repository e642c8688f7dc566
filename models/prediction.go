package models

import (
	"fmt"
	"strconv"
	"time"
)

// PredictionColumns is the 21-column layout of the forecast and all-data CSV files
var PredictionColumns = []string{
	"Date", "Time", "Weekday", "Temperature", "Condition", "Humidity", "Wind_Speed", "Holiday", "Event",
	"Rainfall", "Solar_Generation", "low_price", "high_price", "Average_Price_Rs_Per_Sqft",
	"QoQ_Price_Change_Percent", "Load", "BRPL", "BYPL", "NDPL", "NDMC", "MES",
}

// UtilityActuals holds the per-utility observed loads. They are filled in
// later by a separate process and are always empty when a record is created.
type UtilityActuals struct {
	BRPL *float64
	BYPL *float64
	NDPL *float64
	NDMC *float64
	MES  *float64
}

// PredictionRecord is the persisted result for one forecast hour
type PredictionRecord struct {
	Date    time.Time // calendar date, midnight UTC
	Hour    int
	Weekday time.Weekday

	Temperature     float64
	Condition       string
	Humidity        int
	WindSpeed       float64
	DayType         DayType
	Rainfall        float64
	SolarGeneration float64
	LowPrice        float64
	HighPrice       float64
	AveragePrice    float64
	QoQPriceChange  float64

	Load float64

	Actuals UtilityActuals
}

// NewPredictionRecord combines a feature vector with the model's load estimate
func NewPredictionRecord(fv *FeatureVector, load float64) *PredictionRecord {
	date := time.Date(fv.Year, time.Month(fv.Month), fv.Day, 0, 0, 0, 0, time.UTC)
	return &PredictionRecord{
		Date:            date,
		Hour:            fv.Hour,
		Weekday:         date.Weekday(),
		Temperature:     fv.Temperature,
		Condition:       fv.Condition,
		Humidity:        fv.Humidity,
		WindSpeed:       fv.WindSpeed,
		DayType:         fv.DayType,
		Rainfall:        fv.Rainfall,
		SolarGeneration: fv.SolarGeneration,
		LowPrice:        fv.LowPrice,
		HighPrice:       fv.HighPrice,
		AveragePrice:    fv.AveragePrice,
		QoQPriceChange:  fv.QoQPriceChange,
		Load:            load,
	}
}

// DateString formats the date as DD-MM-YYYY
func (r *PredictionRecord) DateString() string {
	return r.Date.Format("02-01-2006")
}

// TimeString formats the hour slot as "HH-00:HH+1:00", wrapping 23 to "00".
// The odd separator is the format downstream consumers already parse.
func (r *PredictionRecord) TimeString() string {
	next := (r.Hour + 1) % 24
	return fmt.Sprintf("%02d-00:%02d:00", r.Hour, next)
}

// CSVRow renders the record in PredictionColumns order
func (r *PredictionRecord) CSVRow() []string {
	holiday := "False"
	if r.DayType.Flag() == 1 {
		holiday = "True"
	}
	return []string{
		r.DateString(),
		r.TimeString(),
		r.Weekday.String(),
		formatFloat(r.Temperature),
		r.Condition,
		strconv.Itoa(r.Humidity),
		formatFloat(r.WindSpeed),
		holiday,
		r.DayType.Label(),
		formatFloat(r.Rainfall),
		formatFloat(r.SolarGeneration),
		formatFloat(r.LowPrice),
		formatFloat(r.HighPrice),
		formatFloat(r.AveragePrice),
		formatFloat(r.QoQPriceChange),
		formatFloat(r.Load),
		formatOptional(r.Actuals.BRPL),
		formatOptional(r.Actuals.BYPL),
		formatOptional(r.Actuals.NDPL),
		formatOptional(r.Actuals.NDMC),
		formatOptional(r.Actuals.MES),
	}
}

// PredictionDocument is the document-store shape of a record
type PredictionDocument struct {
	Date            string   `json:"Date"`
	Time            string   `json:"Time"`
	Weekday         string   `json:"Weekday"`
	Temperature     float64  `json:"Temperature"`
	Condition       string   `json:"Condition"`
	Humidity        int      `json:"Humidity"`
	WindSpeed       float64  `json:"Wind_Speed"`
	Holiday         bool     `json:"Holiday"`
	Event           string   `json:"Event"`
	Rainfall        float64  `json:"Rainfall"`
	SolarGeneration float64  `json:"Solar_Generation"`
	LowPrice        float64  `json:"low_price"`
	HighPrice       float64  `json:"high_price"`
	AveragePrice    float64  `json:"Average_Price_Rs_Per_Sqft"`
	QoQPriceChange  float64  `json:"QoQ_Price_Change_Percent"`
	Load            float64  `json:"Load"`
	BRPL            *float64 `json:"BRPL"`
	BYPL            *float64 `json:"BYPL"`
	NDPL            *float64 `json:"NDPL"`
	NDMC            *float64 `json:"NDMC"`
	MES             *float64 `json:"MES"`
}

// Document converts the record into its stored document form
func (r *PredictionRecord) Document() PredictionDocument {
	return PredictionDocument{
		Date:            r.DateString(),
		Time:            r.TimeString(),
		Weekday:         r.Weekday.String(),
		Temperature:     r.Temperature,
		Condition:       r.Condition,
		Humidity:        r.Humidity,
		WindSpeed:       r.WindSpeed,
		Holiday:         r.DayType.Flag() == 1,
		Event:           r.DayType.Label(),
		Rainfall:        r.Rainfall,
		SolarGeneration: r.SolarGeneration,
		LowPrice:        r.LowPrice,
		HighPrice:       r.HighPrice,
		AveragePrice:    r.AveragePrice,
		QoQPriceChange:  r.QoQPriceChange,
		Load:            r.Load,
		BRPL:            r.Actuals.BRPL,
		BYPL:            r.Actuals.BYPL,
		NDPL:            r.Actuals.NDPL,
		NDMC:            r.Actuals.NDMC,
		MES:             r.Actuals.MES,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
