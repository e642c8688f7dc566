package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"demand-forecaster/utils"
)

// JSONRecord is the typed subset of an all-data row published as data.json
type JSONRecord struct {
	Date        string   `json:"Date"`
	Time        string   `json:"Time"`
	Weekday     string   `json:"Weekday"`
	Temperature *float64 `json:"Temperature"`
	Condition   string   `json:"Condition"`
	Humidity    *int     `json:"Humidity"`
	WindSpeed   *float64 `json:"Wind_Speed"`
	Holiday     bool     `json:"Holiday"`
	Event       *string  `json:"Event"`
	Load        *float64 `json:"Load"`
}

// JSONExporter re-serializes the all-data CSV into a JSON array
type JSONExporter struct {
	csvPath  string
	jsonPath string
	logger   *utils.Logger
}

// NewJSONExporter creates a new JSONExporter
func NewJSONExporter(csvPath, jsonPath string, logger *utils.Logger) *JSONExporter {
	return &JSONExporter{csvPath: csvPath, jsonPath: jsonPath, logger: logger}
}

// Export rewrites the JSON file from the full CSV history
func (e *JSONExporter) Export() error {
	records, err := e.readRecords()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(e.jsonPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(e.jsonPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.jsonPath, err)
	}

	e.logger.Info("History exported to: %s (%d records)", e.jsonPath, len(records))
	return nil
}

func (e *JSONExporter) readRecords() ([]JSONRecord, error) {
	records := []JSONRecord{}

	file, err := os.Open(e.csvPath)
	if os.IsNotExist(err) {
		e.logger.Warn("No history at %s yet, exporting an empty list", e.csvPath)
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", e.csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", e.csvPath, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read %s line %d: %w", e.csvPath, line, err)
		}
		rec, err := convertRow(func(col string) string {
			if i, ok := index[col]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		})
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", e.csvPath, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// convertRow types one CSV row. Empty numeric cells become null.
func convertRow(get func(col string) string) (JSONRecord, error) {
	rec := JSONRecord{
		Date:      get("Date"),
		Time:      get("Time"),
		Weekday:   get("Weekday"),
		Condition: get("Condition"),
	}

	var err error
	if rec.Temperature, err = optionalFloat(get("Temperature")); err != nil {
		return rec, fmt.Errorf("Temperature: %w", err)
	}
	if rec.WindSpeed, err = optionalFloat(get("Wind_Speed")); err != nil {
		return rec, fmt.Errorf("Wind_Speed: %w", err)
	}
	if rec.Load, err = optionalFloat(get("Load")); err != nil {
		return rec, fmt.Errorf("Load: %w", err)
	}
	if h, err := optionalFloat(get("Humidity")); err != nil {
		return rec, fmt.Errorf("Humidity: %w", err)
	} else if h != nil {
		n := int(*h)
		rec.Humidity = &n
	}

	switch strings.ToLower(get("Holiday")) {
	case "true", "1", "1.0":
		rec.Holiday = true
	}
	if ev := get("Event"); ev != "" {
		rec.Event = &ev
	}
	return rec, nil
}

func optionalFloat(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
