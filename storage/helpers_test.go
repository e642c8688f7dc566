package storage

import (
	"context"
	"errors"
	"time"

	"demand-forecaster/models"
)

func testVector(year, month, day, hour int) *models.FeatureVector {
	return &models.FeatureVector{
		Weekday:         int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()+6) % 7,
		Temperature:     30,
		Condition:       "Sunny",
		Humidity:        35,
		WindSpeed:       9,
		DayType:         models.DayType{Kind: models.NotHoliday},
		SolarGeneration: 300,
		LowPrice:        11000.13,
		HighPrice:       15000.5,
		AveragePrice:    13000.33,
		QoQPriceChange:  1.24,
		Day:             day,
		Month:           month,
		Year:            year,
		Hour:            hour,
		TempXHour:       30 * float64(hour),
	}
}

func testRecord(year, month, day, hour int, load float64) (*models.FeatureVector, *models.PredictionRecord) {
	fv := testVector(year, month, day, hour)
	return fv, models.NewPredictionRecord(fv, load)
}

// memoryStore is an in-memory DocumentStore with the same replace/append
// semantics as PostgresStore
type memoryStore struct {
	future     []StoredDocument
	historical []StoredDocument
	failWrites bool
	closed     bool
}

func (m *memoryStore) ReplaceFuture(ctx context.Context, docs []StoredDocument) error {
	if m.failWrites {
		return errors.New("connection reset")
	}
	m.future = append([]StoredDocument(nil), docs...)
	return nil
}

func (m *memoryStore) InsertHistorical(ctx context.Context, docs []StoredDocument) error {
	if m.failWrites {
		return errors.New("connection reset")
	}
	m.historical = append(m.historical, docs...)
	return nil
}

func (m *memoryStore) Close() error {
	m.closed = true
	return nil
}

func onDate(year, month, day int) func(rec *models.PredictionRecord) bool {
	return func(rec *models.PredictionRecord) bool {
		y, m, d := rec.Date.Date()
		return y == year && int(m) == month && d == day
	}
}
