package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"demand-forecaster/models"
	"demand-forecaster/utils"
)

// CSVWriter appends rows to a CSV file, writing the header when the file is
// new or empty. Appends are not idempotent: writing the same row twice
// stores it twice.
type CSVWriter struct {
	filePath string
	header   []string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, header []string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, header: header, logger: logger}
}

// NewPredictionCSV creates a writer for the 21-column prediction layout
func NewPredictionCSV(filePath string, logger *utils.Logger) *CSVWriter {
	return NewCSVWriter(filePath, models.PredictionColumns, logger)
}

// NewFeatureCSV creates a writer for the 27-column feature layout
func NewFeatureCSV(filePath string, logger *utils.Logger) *CSVWriter {
	return NewCSVWriter(filePath, models.FeatureColumns, logger)
}

// Path returns the file path
func (w *CSVWriter) Path() string {
	return w.filePath
}

// Reset removes the file so the run rebuilds it
func (w *CSVWriter) Reset() error {
	if err := os.Remove(w.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to reset %s: %w", w.filePath, err)
	}
	w.logger.Debug("Reset %s", w.filePath)
	return nil
}

// Append writes one row
func (w *CSVWriter) Append(row []string) error {
	// Ensure output directory exists
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.OpenFile(w.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat CSV file: %w", err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(w.header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.filePath, err)
	}
	return nil
}

// FeatureRow renders a feature vector in FeatureColumns order
func FeatureRow(fv *models.FeatureVector) []string {
	row := fv.Row()
	out := make([]string, len(row))
	for i, c := range row {
		if c.Categorical {
			out[i] = c.Str
		} else {
			out[i] = strconv.FormatFloat(c.Num, 'f', -1, 64)
		}
	}
	return out
}
