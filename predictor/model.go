package predictor

import (
	"encoding/json"
	"fmt"
	"os"

	"demand-forecaster/models"
)

// SavedModel is the JSON-serializable regression artifact. Numeric columns
// carry a coefficient, categorical columns a weight per one-hot label.
type SavedModel struct {
	Name         string                        `json:"name"`
	Columns      []string                      `json:"columns"`
	Intercept    float64                       `json:"intercept"`
	Coefficients map[string]float64            `json:"coefficients"`
	Categories   map[string]map[string]float64 `json:"categories"`
}

// LinearModel is a linear regressor over numeric and one-hot encoded inputs
type LinearModel struct {
	name       string
	columns    []string
	intercept  float64
	coef       map[string]float64
	categories map[string]map[string]float64
}

// LoadModel reads a model artifact from disk
func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrModelLoad, err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes and validates a model artifact
func ParseModel(data []byte) (*LinearModel, error) {
	var saved SavedModel
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", models.ErrModelLoad, err)
	}
	if len(saved.Columns) == 0 {
		return nil, fmt.Errorf("%w: artifact lists no input columns", models.ErrModelLoad)
	}

	seen := make(map[string]bool, len(saved.Columns))
	for _, col := range saved.Columns {
		if seen[col] {
			return nil, fmt.Errorf("%w: duplicate column %q", models.ErrModelLoad, col)
		}
		seen[col] = true

		_, numeric := saved.Coefficients[col]
		_, categorical := saved.Categories[col]
		if numeric == categorical {
			return nil, fmt.Errorf("%w: column %q needs exactly one of a coefficient or a category table", models.ErrModelLoad, col)
		}
	}

	return &LinearModel{
		name:       saved.Name,
		columns:    saved.Columns,
		intercept:  saved.Intercept,
		coef:       saved.Coefficients,
		categories: saved.Categories,
	}, nil
}

// Name returns the artifact name
func (m *LinearModel) Name() string {
	return m.name
}

// Columns returns the input columns in training order
func (m *LinearModel) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// Predict evaluates the model on one row. Labels unseen in training
// contribute nothing.
func (m *LinearModel) Predict(row models.Row) (float64, error) {
	y := m.intercept
	for _, cell := range row {
		if table, ok := m.categories[cell.Name]; ok {
			if !cell.Categorical {
				return 0, fmt.Errorf("%w: column %q is numeric, model expects a category", models.ErrSchemaMismatch, cell.Name)
			}
			y += table[cell.Str]
			continue
		}
		w, ok := m.coef[cell.Name]
		if !ok {
			return 0, fmt.Errorf("%w: unknown column %q", models.ErrSchemaMismatch, cell.Name)
		}
		if cell.Categorical {
			return 0, fmt.Errorf("%w: column %q is categorical, model expects a number", models.ErrSchemaMismatch, cell.Name)
		}
		y += w * cell.Num
	}
	return y, nil
}
