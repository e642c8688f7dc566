package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"demand-forecaster/models"
)

// Paths locates the three reference CSV files
type Paths struct {
	Holidays   string
	Solar      string
	RealEstate string
}

// Load reads and validates all reference tables
func Load(paths Paths) (*Store, error) {
	holidays, err := loadHolidays(paths.Holidays)
	if err != nil {
		return nil, err
	}
	solar, err := loadSolar(paths.Solar)
	if err != nil {
		return nil, err
	}
	realEstate, err := loadRealEstate(paths.RealEstate)
	if err != nil {
		return nil, err
	}
	return newStore(holidays, solar, realEstate), nil
}

// table is a CSV file addressed by header name
type table struct {
	path  string
	index map[string]int
	rows  [][]string
}

func readTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDataLoad, err)
	}
	defer f.Close()
	return parseTable(path, f, required...)
}

func parseTable(path string, r io.Reader, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read header: %v", models.ErrDataLoad, path, err)
	}

	t := &table{path: path, index: make(map[string]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		t.index[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", models.ErrDataLoad, path, col)
		}
	}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrDataLoad, path, err)
		}
		if blank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (t *table) get(row []string, col string) string {
	i := t.index[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) cellErr(line int, col, val string, err error) error {
	// +2: header line and 1-based numbering
	return fmt.Errorf("%w: %s line %d column %q value %q: %v", models.ErrDataLoad, t.path, line+2, col, val, err)
}

func (t *table) intCell(line int, row []string, col string) (int, error) {
	v := t.get(row, col)
	n, err := strconv.Atoi(v)
	if err != nil {
		// pandas writes integer columns with NaNs as floats
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, t.cellErr(line, col, v, err)
		}
		n = int(f)
	}
	return n, nil
}

func (t *table) floatCell(line int, row []string, col string) (float64, error) {
	v := t.get(row, col)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, t.cellErr(line, col, v, err)
	}
	return f, nil
}

func (t *table) dateCell(line int, row []string, col string, layouts ...string) (time.Time, error) {
	v := t.get(row, col)
	for _, layout := range layouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, nil
		}
	}
	return time.Time{}, t.cellErr(line, col, v, fmt.Errorf("want one of %v", layouts))
}

// rawHoliday is one row of the holiday table before grouping
type rawHoliday struct {
	day, month, year int
	holiday          *bool
	event            string
}

func loadHolidays(path string) ([]rawHoliday, error) {
	t, err := readTable(path, "Day", "Month", "Year", "Holiday", "Event")
	if err != nil {
		return nil, err
	}

	out := make([]rawHoliday, 0, len(t.rows))
	for i, row := range t.rows {
		var h rawHoliday
		if h.day, err = t.intCell(i, row, "Day"); err != nil {
			return nil, err
		}
		if h.month, err = t.intCell(i, row, "Month"); err != nil {
			return nil, err
		}
		if h.year, err = t.intCell(i, row, "Year"); err != nil {
			return nil, err
		}
		flag := t.get(row, "Holiday")
		if h.holiday, err = parseFlag(flag); err != nil {
			return nil, t.cellErr(i, "Holiday", flag, err)
		}
		h.event = t.get(row, "Event")
		out = append(out, h)
	}
	return out, nil
}

// parseFlag returns nil for an empty cell
func parseFlag(v string) (*bool, error) {
	var b bool
	switch strings.ToLower(v) {
	case "":
		return nil, nil
	case "1", "1.0", "true", "yes", "y":
		b = true
	case "0", "0.0", "false", "no", "n":
		b = false
	default:
		return nil, fmt.Errorf("not a boolean")
	}
	return &b, nil
}

func loadSolar(path string) ([]models.SolarForecast, error) {
	t, err := readTable(path, "Date", "Forecasted Solar Generation")
	if err != nil {
		return nil, err
	}

	out := make([]models.SolarForecast, 0, len(t.rows))
	for i, row := range t.rows {
		d, err := t.dateCell(i, row, "Date", "2006-01-02", "02-01-2006", "2006-01-02 15:04:05")
		if err != nil {
			return nil, err
		}
		total, err := t.floatCell(i, row, "Forecasted Solar Generation")
		if err != nil {
			return nil, err
		}
		out = append(out, models.SolarForecast{MonthStart: d, TotalKWh: total})
	}
	return out, nil
}

func loadRealEstate(path string) ([]models.RealEstateForecast, error) {
	t, err := readTable(path, "date", "low_price_pred", "high_price_pred", "Average_Price", "QoQ_Price_Change_Percent")
	if err != nil {
		return nil, err
	}

	out := make([]models.RealEstateForecast, 0, len(t.rows))
	for i, row := range t.rows {
		// day-first, as the forecast export writes it
		d, err := t.dateCell(i, row, "date", "02-01-2006", "02/01/2006", "2-1-2006", "2/1/2006", "2006-01-02")
		if err != nil {
			return nil, err
		}
		var f models.RealEstateForecast
		f.QuarterDate = d
		if f.Low, err = t.floatCell(i, row, "low_price_pred"); err != nil {
			return nil, err
		}
		if f.High, err = t.floatCell(i, row, "high_price_pred"); err != nil {
			return nil, err
		}
		if f.Average, err = t.floatCell(i, row, "Average_Price"); err != nil {
			return nil, err
		}
		if f.QoQ, err = t.floatCell(i, row, "QoQ_Price_Change_Percent"); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
