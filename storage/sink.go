package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"demand-forecaster/models"
	"demand-forecaster/utils"
)

// Outputs groups the file destinations of a run
type Outputs struct {
	Forecast *CSVWriter
	AllData  *CSVWriter
	Features *CSVWriter
	JSON     *JSONExporter
}

// Sink fans each prediction out to the CSV files and buffers documents for
// the document store until Flush
type Sink struct {
	out       Outputs
	store     DocumentStore
	isCurrent func(rec *models.PredictionRecord) bool
	runID     uuid.UUID
	logger    *utils.Logger

	future  []StoredDocument
	history []StoredDocument
}

// NewSink creates a new Sink. store may be nil, in which case only files are
// written.
func NewSink(out Outputs, store DocumentStore, isCurrent func(rec *models.PredictionRecord) bool, logger *utils.Logger) *Sink {
	return &Sink{
		out:       out,
		store:     store,
		isCurrent: isCurrent,
		runID:     uuid.New(),
		logger:    logger,
	}
}

// RunID identifies the documents written by this sink
func (s *Sink) RunID() uuid.UUID {
	return s.runID
}

// Reset truncates the per-run files. All_Data.csv is a running history and
// is kept.
func (s *Sink) Reset() error {
	var result *multierror.Error
	for _, w := range []*CSVWriter{s.out.Forecast, s.out.Features} {
		if w == nil {
			continue
		}
		if err := w.Reset(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Write appends one record to every file destination. Errors from each
// destination are collected so one failing file does not block the others.
// The document is buffered only when every file write succeeded.
func (s *Sink) Write(fv *models.FeatureVector, rec *models.PredictionRecord) error {
	var result *multierror.Error
	current := s.isCurrent != nil && s.isCurrent(rec)

	row := rec.CSVRow()
	if s.out.Forecast != nil {
		if err := s.out.Forecast.Append(row); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if current && s.out.AllData != nil {
		if err := s.out.AllData.Append(row); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if s.out.Features != nil {
		if err := s.out.Features.Append(FeatureRow(fv)); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		// the record counts as skipped, so it must not reach the store either
		return err
	}

	doc := NewStoredDocument(s.runID, rec)
	s.future = append(s.future, doc)
	if current {
		s.history = append(s.history, doc)
	}
	return nil
}

// Flush writes the buffered documents and regenerates the JSON export. A
// store failure is logged and reported, and the JSON export still runs.
func (s *Sink) Flush(ctx context.Context) error {
	var result *multierror.Error

	if s.store != nil {
		if err := s.store.ReplaceFuture(ctx, s.future); err != nil {
			s.logger.Error("Failed to replace future predictions: %v", err)
			result = multierror.Append(result, storeWriteError(err))
		}
		if err := s.store.InsertHistorical(ctx, s.history); err != nil {
			s.logger.Error("Failed to append historical predictions: %v", err)
			result = multierror.Append(result, storeWriteError(err))
		}
	} else {
		s.logger.Warn("No document store configured, skipping %d documents", len(s.future))
	}

	if s.out.JSON != nil {
		if err := s.out.JSON.Export(); err != nil {
			s.logger.Error("Failed to export JSON: %v", err)
			result = multierror.Append(result, err)
		}
	}

	s.logger.Info("Flushed run %s: %d future, %d historical documents", s.runID, len(s.future), len(s.history))
	s.future = nil
	s.history = nil
	return result.ErrorOrNil()
}

func storeWriteError(err error) error {
	if errors.Is(err, models.ErrStoreWrite) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrStoreWrite, err)
}
