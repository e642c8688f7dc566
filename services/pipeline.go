package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"demand-forecaster/models"
	"demand-forecaster/utils"
)

// Predictor returns the load estimate for a feature vector
type Predictor interface {
	Predict(fv *models.FeatureVector) (float64, error)
}

// RecordWriter persists prediction records
type RecordWriter interface {
	Write(fv *models.FeatureVector, rec *models.PredictionRecord) error
	Flush(ctx context.Context) error
}

// flushTimeout bounds the final flush of a cancelled run
const flushTimeout = 30 * time.Second

// CurrentFilter reports whether a record belongs in the historical log
type CurrentFilter func(rec *models.PredictionRecord) bool

// NewCurrentDayFilter matches records dated now+offset days in loc
func NewCurrentDayFilter(now time.Time, loc *time.Location, offsetDays int) CurrentFilter {
	target := now.In(loc).AddDate(0, 0, offsetDays)
	y, m, d := target.Date()
	return func(rec *models.PredictionRecord) bool {
		ry, rm, rd := rec.Date.Date()
		return ry == y && rm == m && rd == d
	}
}

// Pipeline runs scraped observations through feature building, prediction
// and persistence, one record at a time
type Pipeline struct {
	builder   *FeatureBuilder
	predictor Predictor
	sink      RecordWriter
	summary   *SummaryService
	isCurrent CurrentFilter
	logger    *utils.Logger
}

// NewPipeline creates a new Pipeline
func NewPipeline(builder *FeatureBuilder, predictor Predictor, sink RecordWriter, isCurrent CurrentFilter, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		builder:   builder,
		predictor: predictor,
		sink:      sink,
		summary:   NewSummaryService(logger),
		isCurrent: isCurrent,
		logger:    logger,
	}
}

// Run processes every observation in order. Parse and lookup failures skip
// only the affected record. A schema mismatch between features and model
// aborts the run since no record could be predicted. A cancelled run still
// flushes the records written so far before returning the context error.
func (p *Pipeline) Run(ctx context.Context, observations []models.RawObservation) (*models.RunSummary, error) {
	p.logger.Info("Processing %d observations...", len(observations))

	skips := make(map[string]int)
	var records []*models.PredictionRecord

	for _, obs := range observations {
		if err := ctx.Err(); err != nil {
			// records already in the files still go to the store
			p.logger.Warn("Run cancelled after %d records, flushing what was written", len(records))
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
			p.flush(flushCtx)
			cancel()
			return nil, err
		}

		rec, err := p.process(obs)
		if err != nil {
			if errors.Is(err, models.ErrSchemaMismatch) {
				return nil, err
			}
			skips[models.ErrorKind(err)]++
			p.logSkip(obs, err)
			continue
		}
		records = append(records, rec)
	}

	p.flush(ctx)

	report := p.summary.Generate(len(observations), records, skips, p.isCurrent)
	p.logger.Info("Processed %d/%d observations (%d skipped)", report.Processed, report.Observations, report.Skipped)
	return report, nil
}

func (p *Pipeline) flush(ctx context.Context) {
	if err := p.sink.Flush(ctx); err != nil {
		p.logger.Error("Flushing outputs finished with errors: %v", err)
	}
}

func (p *Pipeline) process(obs models.RawObservation) (*models.PredictionRecord, error) {
	fv, err := p.builder.Build(obs)
	if err != nil {
		return nil, err
	}

	load, err := p.predictor.Predict(fv)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	rec := models.NewPredictionRecord(fv, load)
	if err := p.sink.Write(fv, rec); err != nil {
		return nil, fmt.Errorf("write record: %w", err)
	}
	return rec, nil
}

func (p *Pipeline) logSkip(obs models.RawObservation, err error) {
	var le *models.LookupError
	if errors.As(err, &le) {
		p.logger.Warn("Skipping %s %02d:00 (source %s): %s lookup failed: %v",
			obs.DateKey(), obs.Hour, obs.SourceKey, le.Table, err)
		return
	}
	var pe *models.ParseError
	if errors.As(err, &pe) {
		p.logger.Warn("Skipping %s %02d:00 (source %s): bad %s cell: %v",
			obs.DateKey(), obs.Hour, obs.SourceKey, pe.Field, err)
		return
	}
	p.logger.Error("Skipping %s %02d:00 (source %s): %v", obs.DateKey(), obs.Hour, obs.SourceKey, err)
}
