package recorder

// TrainingRun holds the outcome of one training run.
type TrainingRun struct {
	Samples     int
	R2          float64
	GridSource  string // "loaded" or "synthetic"
	PriceSource string
	DurationMS  int64
}

// PredictionDay is one day of a predictor run's output.
type PredictionDay struct {
	Date           string
	DayOffset      int
	PredictedPrice float64
	PriceLevel     string
	Confidence     float64
	AvgWindSpeed   float64
	AvgTemperature float64
}

// FetchEvent records one data-fetch attempt.
type FetchEvent struct {
	Kind    string // "grid" or "prices"
	Source  string // fetcher name
	Count   int    // points or records fetched
	Success bool
	Error   string
}

// Recorder persists run history for analysis.
type Recorder interface {
	RecordTraining(run *TrainingRun) error
	RecordPredictionDay(day *PredictionDay) error
	RecordFetch(evt *FetchEvent) error
	Close() error
}
