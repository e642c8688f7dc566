package services

import (
	"demand-forecaster/models"
	"demand-forecaster/utils"
)

// SummaryService computes run analytics from the produced records
type SummaryService struct {
	logger *utils.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate condenses one run into a RunSummary
func (s *SummaryService) Generate(observations int, records []*models.PredictionRecord, skips map[string]int, isCurrent CurrentFilter) *models.RunSummary {
	report := &models.RunSummary{
		Observations:  observations,
		Processed:     len(records),
		SkipReasons:   make(map[string]int, len(skips)),
		RecordsByDate: make(map[string]int),
	}
	for kind, n := range skips {
		report.SkipReasons[kind] = n
		report.Skipped += n
	}

	if len(records) == 0 {
		s.logger.Warn("No records to summarize")
		return report
	}

	var total float64
	report.Peak = records[0]
	report.Trough = records[0]
	for _, r := range records {
		total += r.Load
		if r.Load > report.Peak.Load {
			report.Peak = r
		}
		if r.Load < report.Trough.Load {
			report.Trough = r
		}
		report.RecordsByDate[r.DateString()]++
		if isCurrent != nil && isCurrent(r) {
			report.CurrentDay++
		}
	}
	report.MaxLoad = report.Peak.Load
	report.MinLoad = report.Trough.Load
	report.AverageLoad = utils.Round(total/float64(len(records)), 3)

	return report
}
