package predictor

import (
	"fmt"

	"demand-forecaster/models"
	"demand-forecaster/utils"
)

// Regressor is a trained model taking a single tabular row
type Regressor interface {
	Columns() []string
	Predict(row models.Row) (float64, error)
}

// Adapter feeds feature vectors to a Regressor
type Adapter struct {
	model  Regressor
	logger *utils.Logger
}

// NewAdapter creates a new Adapter
func NewAdapter(model Regressor, logger *utils.Logger) *Adapter {
	return &Adapter{model: model, logger: logger}
}

// CheckSchema compares the builder's columns with the model's
func (a *Adapter) CheckSchema() error {
	return compareColumns(models.FeatureColumns, a.model.Columns())
}

// Predict returns the load estimate for fv, rounded to 3 decimals
func (a *Adapter) Predict(fv *models.FeatureVector) (float64, error) {
	row := fv.Row()
	if err := compareColumns(row.Names(), a.model.Columns()); err != nil {
		return 0, err
	}
	y, err := a.model.Predict(row)
	if err != nil {
		return 0, err
	}
	return utils.Round(y, 3), nil
}

func compareColumns(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d input columns, model expects %d", models.ErrSchemaMismatch, len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("%w: column %d is %q, model expects %q", models.ErrSchemaMismatch, i, got[i], want[i])
		}
	}
	return nil
}
