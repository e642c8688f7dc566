package predictor

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demand-forecaster/models"
	"demand-forecaster/utils"
)

func sampleVector() *models.FeatureVector {
	return &models.FeatureVector{
		Weekday:     0,
		Temperature: 30,
		Condition:   "Sunny",
		Humidity:    35,
		DayType:     models.DayType{Kind: models.NotHoliday},
		Day:         7,
		Month:       4,
		Year:        2025,
		DayOfYear:   97,
		Hour:        14,
	}
}

func loadTestModel(t *testing.T) *LinearModel {
	t.Helper()
	m, err := LoadModel("testdata/model.json")
	require.NoError(t, err)
	return m
}

func TestLoadModel(t *testing.T) {
	m := loadTestModel(t)
	assert.Equal(t, "delhi-load-linear-test", m.Name())
	assert.Equal(t, models.FeatureColumns, m.Columns())
}

func TestAdapter_Predict(t *testing.T) {
	a := NewAdapter(loadTestModel(t), utils.Discard())
	require.NoError(t, a.CheckSchema())

	// 2000 + 50*30 + 10*14 + 0.1234*35 + Sunny(100)
	y, err := a.Predict(sampleVector())
	require.NoError(t, err)
	assert.Equal(t, 3744.319, y)
}

func TestAdapter_PredictCategoricalAndHoliday(t *testing.T) {
	a := NewAdapter(loadTestModel(t), utils.Discard())

	fv := sampleVector()
	fv.Condition = "Thunderstorms" // unseen label
	fv.DayType = models.DayType{Kind: models.Weekend}

	// 2000 + 1500 + 140 + 4.319 - 300 - 150
	y, err := a.Predict(fv)
	require.NoError(t, err)
	assert.Equal(t, 3194.319, y)
}

func TestAdapter_SchemaMismatch(t *testing.T) {
	// model trained on two columns only
	m, err := ParseModel([]byte(`{
		"columns": ["Temperature", "Hour"],
		"intercept": 1,
		"coefficients": {"Temperature": 1, "Hour": 1}
	}`))
	require.NoError(t, err)

	a := NewAdapter(m, utils.Discard())
	assert.True(t, errors.Is(a.CheckSchema(), models.ErrSchemaMismatch))

	_, err = a.Predict(sampleVector())
	assert.True(t, errors.Is(err, models.ErrSchemaMismatch))
}

type reorderedModel struct{ *LinearModel }

func (r reorderedModel) Columns() []string {
	cols := r.LinearModel.Columns()
	cols[0], cols[1] = cols[1], cols[0]
	return cols
}

func TestAdapter_SchemaOrderMatters(t *testing.T) {
	a := NewAdapter(reorderedModel{loadTestModel(t)}, utils.Discard())

	_, err := a.Predict(sampleVector())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "column 0")
}

func TestParseModel_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"no columns":     `{"columns": []}`,
		"duplicate":      `{"columns": ["Hour", "Hour"], "coefficients": {"Hour": 1}}`,
		"no weight":      `{"columns": ["Hour"], "coefficients": {}}`,
		"both encodings": `{"columns": ["Event"], "coefficients": {"Event": 1}, "categories": {"Event": {"No": 0}}}`,
	}
	for name, body := range cases {
		_, err := ParseModel([]byte(body))
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, models.ErrModelLoad), name)
	}
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "model.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrModelLoad))
}

func TestLinearModel_RejectsWrongCellKind(t *testing.T) {
	m := loadTestModel(t)
	row := sampleVector().Row()
	row[2] = models.Cell{Name: "Condition", Num: 1}

	_, err := m.Predict(row)
	assert.True(t, errors.Is(err, models.ErrSchemaMismatch))
}
