package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demand-forecaster/config"
	"demand-forecaster/models"
	"demand-forecaster/utils"
)

func newBuilder(ref ReferenceData) *FeatureBuilder {
	return NewFeatureBuilder(ref, config.WindDefaultZero, utils.Discard())
}

func TestBuild_AssemblesFeatureVector(t *testing.T) {
	b := newBuilder(newFakeRef())

	// 2025-04-07 is a Monday, day 97 of the year
	fv, err := b.Build(observation(2025, 4, 7, 14))
	require.NoError(t, err)

	assert.Equal(t, 0, fv.Weekday)
	assert.Equal(t, 97, fv.DayOfYear)
	assert.InDelta(t, 30.0, fv.Temperature, 1e-9)
	assert.Equal(t, "Sunny", fv.Condition)
	assert.Equal(t, 35, fv.Humidity)
	assert.Equal(t, 9.0, fv.WindSpeed)
	assert.Equal(t, 0.0, fv.Rainfall)
	assert.Equal(t, models.NotHoliday, fv.DayType.Kind)

	assert.Equal(t, 300.0, fv.SolarGeneration)
	assert.Equal(t, 11000.13, fv.LowPrice)
	assert.Equal(t, 15000.5, fv.HighPrice)
	assert.Equal(t, 13000.33, fv.AveragePrice)
	assert.Equal(t, 1.24, fv.QoQPriceChange)

	assert.InDelta(t, 420.0, fv.TempXHour, 1e-9)

	sin, cos := CyclicEncode(14, 24)
	assert.Equal(t, sin, fv.HourSin)
	assert.Equal(t, cos, fv.HourCos)
	assert.InDelta(t, 0.0, fv.WeekdaySin, 1e-12)
	assert.InDelta(t, 1.0, fv.WeekdayCos, 1e-12)
}

func TestBuild_RowMatchesFeatureColumns(t *testing.T) {
	b := newBuilder(newFakeRef())
	fv, err := b.Build(observation(2025, 4, 12, 0))
	require.NoError(t, err)

	row := fv.Row()
	assert.Equal(t, models.FeatureColumns, row.Names())
	require.Len(t, row, 27)

	assert.True(t, row[2].Categorical)
	assert.Equal(t, "Sunny", row[2].Str)
	assert.True(t, row[6].Categorical)
	assert.Equal(t, "No", row[6].Str)
	assert.Equal(t, 5.0, row[0].Num, "2025-04-12 is a Saturday")
}

func TestBuild_HolidayFromReference(t *testing.T) {
	ref := newFakeRef()
	ref.holidays["2025-10-20"] = models.DayType{Kind: models.Holiday, Event: "Diwali/Festival/Holiday"}
	b := newBuilder(ref)

	fv, err := b.Build(observation(2025, 10, 20, 9))
	require.NoError(t, err)

	row := fv.Row()
	assert.Equal(t, 1.0, row[5].Num)
	assert.Equal(t, "Diwali/Festival/Holiday", row[6].Str)
}

func TestBuild_TemperatureUnroundedInteractionRounded(t *testing.T) {
	b := newBuilder(newFakeRef())

	obs := observation(2025, 4, 7, 3)
	obs.TemperatureText = "70 °F" // 21.111... °C
	fv, err := b.Build(obs)
	require.NoError(t, err)
	assert.Equal(t, (70.0-32)*5/9, fv.Temperature, "temperature is not rounded")
	assert.InDelta(t, 63.33, fv.TempXHour, 1e-9, "interaction uses the 2-place temperature")

	obs.TemperatureText = "20 °C"
	fv, err = b.Build(obs)
	require.NoError(t, err)
	assert.Equal(t, 20.0, fv.Temperature)
}

func TestBuild_ParseErrors(t *testing.T) {
	b := newBuilder(newFakeRef())

	obs := observation(2025, 4, 7, 3)
	obs.TemperatureText = "hot"
	_, err := b.Build(obs)
	assert.True(t, errors.Is(err, models.ErrParse))

	obs = observation(2025, 2, 30, 3)
	_, err = b.Build(obs)
	var pe *models.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "date", pe.Field)

	obs = observation(2025, 4, 7, 3)
	obs.HumidityText = "--"
	_, err = b.Build(obs)
	assert.True(t, errors.Is(err, models.ErrParse))
}

func TestBuild_WindRejectPolicy(t *testing.T) {
	obs := observation(2025, 4, 7, 3)
	obs.WindText = "calm"

	fv, err := newBuilder(newFakeRef()).Build(obs)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fv.WindSpeed)

	strict := NewFeatureBuilder(newFakeRef(), config.WindReject, utils.Discard())
	_, err = strict.Build(obs)
	assert.True(t, errors.Is(err, models.ErrParse))
}

func TestBuild_LookupErrors(t *testing.T) {
	ref := newFakeRef()
	ref.missingQuarters["2025-Q2"] = true
	ref.missingSolar["2025-07-01"] = true
	b := newBuilder(ref)

	_, err := b.Build(observation(2025, 5, 1, 3))
	var le *models.LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "real_estate", le.Table)

	_, err = b.Build(observation(2025, 7, 1, 3))
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "solar", le.Table)
}

func TestBuild_IsDeterministic(t *testing.T) {
	b := newBuilder(newFakeRef())
	a, err := b.Build(observation(2025, 4, 7, 22))
	require.NoError(t, err)
	c, err := b.Build(observation(2025, 4, 7, 22))
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestCyclicEncode_RoundTrip(t *testing.T) {
	periods := []struct {
		period   int
		from, to int
	}{
		{HoursPerDay, 0, 23},
		{DaysPerWeek, 0, 6},
		{MonthsPerYear, 1, 12},
		{DayOfYearPeriod, 1, 366},
	}
	norm := func(a float64) float64 {
		a = math.Mod(a, 2*math.Pi)
		if a < 0 {
			a += 2 * math.Pi
		}
		return a
	}
	for _, p := range periods {
		for v := p.from; v <= p.to; v++ {
			sin, cos := CyclicEncode(v, p.period)
			got := norm(math.Atan2(sin, cos))
			want := norm(2 * math.Pi * float64(v) / float64(p.period))
			diff := math.Abs(got - want)
			if diff > math.Pi {
				diff = 2*math.Pi - diff
			}
			assert.Less(t, diff, 1e-9, "value %d period %d", v, p.period)
		}
	}
}

func TestCyclicEncode_DayOfYearIgnoresLeapYears(t *testing.T) {
	// day 366 of a leap year wraps past day 1
	sin366, cos366 := CyclicEncode(366, DayOfYearPeriod)
	sin1, cos1 := CyclicEncode(1, DayOfYearPeriod)
	assert.InDelta(t, sin1, sin366, 1e-12)
	assert.InDelta(t, cos1, cos366, 1e-12)
}

func TestMondayFirst(t *testing.T) {
	assert.Equal(t, 0, MondayFirst(time.Monday))
	assert.Equal(t, 5, MondayFirst(time.Saturday))
	assert.Equal(t, 6, MondayFirst(time.Sunday))
}
