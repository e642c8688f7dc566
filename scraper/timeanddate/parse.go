package timeanddate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"demand-forecaster/models"
)

// Cell positions in an hourly table row, counting the leading <th>
const (
	colHour        = 0
	colTemperature = 1
	colCondition   = 3
	colWind        = 5
	colHumidity    = 7
	colRainfall    = 9

	minCells   = 10
	headerRows = 2
)

// DateParam extracts the hd query value (YYYYMMDD) from a day link
func DateParam(href string) (string, bool) {
	if u, err := url.Parse(href); err == nil {
		if hd := u.Query().Get("hd"); hd != "" {
			return hd, true
		}
	}
	if i := strings.LastIndex(href, "hd="); i >= 0 {
		hd := href[i+len("hd="):]
		if j := strings.IndexAny(hd, "&#"); j >= 0 {
			hd = hd[:j]
		}
		return hd, hd != ""
	}
	return "", false
}

// ParseHD decodes an hd value into a calendar date
func ParseHD(hd string) (time.Time, error) {
	if len(hd) != 8 {
		return time.Time{}, &models.ParseError{Field: "date", Text: hd}
	}
	t, err := time.Parse("20060102", hd)
	if err != nil {
		return time.Time{}, &models.ParseError{Field: "date", Text: hd, Err: err}
	}
	return t, nil
}

// ParseHour reads the hour from a time cell such as "05:30\nMon, 7 Apr". A
// trailing am/pm marker is honored.
func ParseHour(cell string) (int, error) {
	first := strings.TrimSpace(strings.SplitN(strings.TrimSpace(cell), "\n", 2)[0])
	lower := strings.ToLower(first)

	var pm, am bool
	switch {
	case strings.HasSuffix(lower, "pm"):
		pm = true
		lower = strings.TrimSpace(strings.TrimSuffix(lower, "pm"))
	case strings.HasSuffix(lower, "am"):
		am = true
		lower = strings.TrimSpace(strings.TrimSuffix(lower, "am"))
	}

	hourText := strings.SplitN(lower, ":", 2)[0]
	hour, err := strconv.Atoi(strings.TrimSpace(hourText))
	if err != nil {
		return 0, &models.ParseError{Field: "hour", Text: cell, Err: err}
	}
	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}
	if hour < 0 || hour > 23 {
		return 0, &models.ParseError{Field: "hour", Text: cell, Err: fmt.Errorf("hour %d out of range", hour)}
	}
	return hour, nil
}

// RowToObservation maps the cells of one hourly table row to an observation.
// The date always comes from the day link, never from the time cell.
func RowToObservation(hd string, date time.Time, cells []string) (models.RawObservation, error) {
	if len(cells) < minCells {
		return models.RawObservation{}, fmt.Errorf("row has %d cells, want at least %d", len(cells), minCells)
	}
	hour, err := ParseHour(cells[colHour])
	if err != nil {
		return models.RawObservation{}, err
	}
	return models.RawObservation{
		SourceKey:       hd,
		Year:            date.Year(),
		Month:           int(date.Month()),
		Day:             date.Day(),
		Hour:            hour,
		TemperatureText: strings.TrimSpace(cells[colTemperature]),
		Condition:       strings.TrimSpace(cells[colCondition]),
		WindText:        strings.TrimSpace(cells[colWind]),
		HumidityText:    strings.TrimSpace(cells[colHumidity]),
		RainfallText:    strings.TrimSpace(cells[colRainfall]),
	}, nil
}

// TableToObservations converts a scraped table, skipping the header rows and
// any row too short to hold a full hour. Rows with an unreadable hour are
// reported through onSkip.
func TableToObservations(hd string, date time.Time, rows [][]string, onSkip func(row int, err error)) []models.RawObservation {
	var out []models.RawObservation
	for i, cells := range rows {
		if i < headerRows || len(cells) < minCells {
			continue
		}
		obs, err := RowToObservation(hd, date, cells)
		if err != nil {
			if onSkip != nil {
				onSkip(i, err)
			}
			continue
		}
		out = append(out, obs)
	}
	return out
}
