package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demand-forecaster/models"
	"demand-forecaster/utils"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "Forecast_Data.csv")
	w := NewPredictionCSV(path, utils.Discard())

	_, rec := testRecord(2025, 4, 7, 0, 3000.5)
	require.NoError(t, w.Append(rec.CSVRow()))
	_, rec = testRecord(2025, 4, 7, 23, 2999)
	require.NoError(t, w.Append(rec.CSVRow()))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, models.PredictionColumns, rows[0])
	assert.Equal(t, []string{"07-04-2025", "00-00:01:00", "Monday", "30", "Sunny", "35", "9", "False", "No"}, rows[1][:9])
	assert.Equal(t, "3000.5", rows[1][15])
	assert.Equal(t, []string{"", "", "", "", ""}, rows[1][16:])
	assert.Equal(t, "23-00:00:00", rows[2][1])
}

func TestCSVWriter_AppendIsNotIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "All_Data.csv")
	_, rec := testRecord(2025, 4, 7, 5, 100)

	for run := 0; run < 2; run++ {
		w := NewPredictionCSV(path, utils.Discard())
		require.NoError(t, w.Append(rec.CSVRow()))
	}

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, rows[1], rows[2])
}

func TestCSVWriter_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample_data.csv")
	w := NewFeatureCSV(path, utils.Discard())

	require.NoError(t, w.Reset(), "missing file is not an error")

	fv := testVector(2025, 4, 7, 2)
	require.NoError(t, w.Append(FeatureRow(fv)))
	require.NoError(t, w.Reset())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, w.Append(FeatureRow(fv)))
	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, models.FeatureColumns, rows[0])
}

func TestFeatureRow(t *testing.T) {
	fv := testVector(2025, 4, 12, 3)
	fv.DayType = models.DayType{Kind: models.Weekend}

	row := FeatureRow(fv)
	require.Len(t, row, len(models.FeatureColumns))
	assert.Equal(t, "5", row[0])
	assert.Equal(t, "Sunny", row[2])
	assert.Equal(t, "1", row[5])
	assert.Equal(t, "Weekend", row[6])
	assert.Equal(t, "90", row[26])
}
