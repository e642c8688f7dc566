package services

import (
	"context"
	"fmt"

	"demand-forecaster/models"
)

// fakeRef serves fixed reference values; quarters listed in missingQuarters
// and months in missingSolar have no rows
type fakeRef struct {
	holidays        map[string]models.DayType
	missingQuarters map[string]bool
	missingSolar    map[string]bool
}

func newFakeRef() *fakeRef {
	return &fakeRef{
		holidays:        map[string]models.DayType{},
		missingQuarters: map[string]bool{},
		missingSolar:    map[string]bool{},
	}
}

func (f *fakeRef) LookupHoliday(day, month, year int) models.DayType {
	if dt, ok := f.holidays[fmt.Sprintf("%04d-%02d-%02d", year, month, day)]; ok {
		return dt
	}
	return models.DayType{Kind: models.NotHoliday}
}

func (f *fakeRef) LookupSolar(year, month int) (float64, error) {
	key := fmt.Sprintf("%04d-%02d-01", year, month)
	if f.missingSolar[key] {
		return 0, &models.LookupError{Table: "solar", Key: key}
	}
	return 300.004, nil
}

func (f *fakeRef) LookupRealEstate(year, quarter int) (models.RealEstateForecast, error) {
	key := fmt.Sprintf("%04d-Q%d", year, quarter)
	if f.missingQuarters[key] {
		return models.RealEstateForecast{}, &models.LookupError{Table: "real_estate", Key: key}
	}
	return models.RealEstateForecast{Low: 11000.126, High: 15000.5, Average: 13000.333, QoQ: 1.239}, nil
}

// loadByHour predicts 1000 + hour
type loadByHour struct {
	err error
}

func (p *loadByHour) Predict(fv *models.FeatureVector) (float64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return 1000 + float64(fv.Hour), nil
}

type memorySink struct {
	records  []*models.PredictionRecord
	features []*models.FeatureVector
	flushed  int
}

func (s *memorySink) Write(fv *models.FeatureVector, rec *models.PredictionRecord) error {
	s.features = append(s.features, fv)
	s.records = append(s.records, rec)
	return nil
}

func (s *memorySink) Flush(ctx context.Context) error {
	s.flushed++
	return nil
}

func observation(year, month, day, hour int) models.RawObservation {
	return models.RawObservation{
		SourceKey:       fmt.Sprintf("%04d%02d%02d", year, month, day),
		Year:            year,
		Month:           month,
		Day:             day,
		Hour:            hour,
		TemperatureText: "86 °F",
		Condition:       "Sunny.",
		WindText:        "9 km/h",
		HumidityText:    "35%",
		RainfallText:    "-",
	}
}
