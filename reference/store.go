package reference

import (
	"fmt"
	"strings"
	"time"

	"demand-forecaster/models"
	"demand-forecaster/utils"
)

// EventDelimiter separates event labels in the holiday table
const EventDelimiter = "/"

type dateKey struct {
	day, month, year int
}

// Store holds the reference tables. It is immutable after Load and safe for
// concurrent readers.
type Store struct {
	holidays   map[dateKey]models.HolidayRecord
	solar      []models.SolarForecast
	realEstate []models.RealEstateForecast
}

func newStore(holidays []rawHoliday, solar []models.SolarForecast, realEstate []models.RealEstateForecast) *Store {
	return &Store{
		holidays:   groupHolidays(holidays),
		solar:      solar,
		realEstate: realEstate,
	}
}

// groupHolidays folds rows sharing a date: the first non-empty flag wins and
// event labels are merged without repeats in first-seen order
func groupHolidays(rows []rawHoliday) map[dateKey]models.HolidayRecord {
	grouped := make(map[dateKey]models.HolidayRecord)
	for _, r := range rows {
		key := dateKey{r.day, r.month, r.year}
		rec, ok := grouped[key]
		if !ok {
			rec = models.HolidayRecord{Day: r.day, Month: r.month, Year: r.year}
		}
		if rec.Holiday == nil && r.holiday != nil {
			rec.Holiday = r.holiday
		}
		if r.event != "" {
			rec.Events = append(rec.Events, r.event)
		}
		grouped[key] = rec
	}
	for key, rec := range grouped {
		rec.Events = UniqueEventTokens(rec.Events)
		grouped[key] = rec
	}
	return grouped
}

// UniqueEventTokens splits every label on the delimiter and keeps each token
// once, in first-seen order. ["Diwali/Festival", "Diwali/Holiday"] becomes
// ["Diwali", "Festival", "Holiday"].
func UniqueEventTokens(events []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Split(strings.Join(events, EventDelimiter), EventDelimiter) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	if len(out) == 1 && out[0] == "" {
		return nil
	}
	return out
}

// Holiday returns the grouped holiday row for a date, if any
func (s *Store) Holiday(day, month, year int) (models.HolidayRecord, bool) {
	rec, ok := s.holidays[dateKey{day, month, year}]
	return rec, ok
}

// LookupHoliday resolves the day type of a date. Dates without a holiday row
// are Weekend on Saturday and Sunday and NotHoliday otherwise.
func (s *Store) LookupHoliday(day, month, year int) models.DayType {
	if rec, ok := s.Holiday(day, month, year); ok {
		dt := models.DayType{Kind: models.NotHoliday, Event: strings.Join(rec.Events, EventDelimiter)}
		if rec.Holiday != nil && *rec.Holiday {
			dt.Kind = models.Holiday
		}
		return dt
	}

	switch time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday() {
	case time.Saturday, time.Sunday:
		return models.DayType{Kind: models.Weekend}
	default:
		return models.DayType{Kind: models.NotHoliday}
	}
}

// LookupSolar returns the per-record solar generation for a month: the
// monthly total rounded to 2 decimals, divided by the days in the month
func (s *Store) LookupSolar(year, month int) (float64, error) {
	for _, f := range s.solar {
		if f.MonthStart.Year() == year && int(f.MonthStart.Month()) == month && f.MonthStart.Day() == 1 {
			return utils.Round(f.TotalKWh, 2) / float64(DaysInMonth(year, month)), nil
		}
	}
	return 0, &models.LookupError{Table: "solar", Key: fmt.Sprintf("%04d-%02d-01", year, month)}
}

// LookupRealEstate returns the forecast row of a calendar quarter. Exactly
// one row must match.
func (s *Store) LookupRealEstate(year, quarter int) (models.RealEstateForecast, error) {
	var match models.RealEstateForecast
	found := 0
	for _, f := range s.realEstate {
		if f.QuarterDate.Year() == year && Quarter(int(f.QuarterDate.Month())) == quarter {
			match = f
			found++
		}
	}
	if found != 1 {
		return models.RealEstateForecast{}, &models.LookupError{
			Table: "real_estate",
			Key:   fmt.Sprintf("%04d-Q%d", year, quarter),
			Found: found,
		}
	}
	return match, nil
}

// Quarter maps a month (1-12) to its calendar quarter (1-4)
func Quarter(month int) int {
	return (month-1)/3 + 1
}

// DaysInMonth returns the number of days in a month
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
