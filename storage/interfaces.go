package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"demand-forecaster/models"
)

// StoredDocument is one prediction as kept in the document store, keyed by
// its calendar date
type StoredDocument struct {
	RunID uuid.UUID
	Date  time.Time
	Time  string
	Hour  int
	Body  models.PredictionDocument
}

// NewStoredDocument wraps a record for the document store
func NewStoredDocument(runID uuid.UUID, rec *models.PredictionRecord) StoredDocument {
	return StoredDocument{
		RunID: runID,
		Date:  rec.Date,
		Time:  rec.TimeString(),
		Hour:  rec.Hour,
		Body:  rec.Document(),
	}
}

// DocumentStore mirrors predictions into two collections: the latest run's
// future predictions, replaced wholesale on every run, and an append-only
// history of current-day predictions
type DocumentStore interface {
	ReplaceFuture(ctx context.Context, docs []StoredDocument) error
	InsertHistorical(ctx context.Context, docs []StoredDocument) error
	Close() error
}
