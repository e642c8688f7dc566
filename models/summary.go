package models

// RunSummary holds the analytics printed at the end of a run
type RunSummary struct {
	Observations int
	Processed    int
	Skipped      int
	SkipReasons  map[string]int // error kind -> count

	AverageLoad float64
	MinLoad     float64
	MaxLoad     float64
	Peak        *PredictionRecord
	Trough      *PredictionRecord

	RecordsByDate map[string]int // DD-MM-YYYY -> records
	CurrentDay    int            // records that passed the is-current filter
}
