package domain

import "time"

type Dimension string

const (
	DimensionShape  Dimension = "shape"
	DimensionPart   Dimension = "part"
	DimensionModule Dimension = "module"
)

type Tier string

const (
	TierLow      Tier = "Low"
	TierMedium   Tier = "Medium"
	TierHigh     Tier = "High"
	TierCritical Tier = "Critical"
)

// OthersName is the synthetic bucket that absorbs everything past the top-k.
const OthersName = "Others"

// Pair is a canonical (key, count) tuple.
type Pair struct {
	Key   string
	Count int64
}

type SeriesEntry struct {
	Name       string  `csv:"name"       db:"name"       json:"name"`
	Count      int64   `csv:"count"      db:"count"      json:"count"`
	Percentage float64 `csv:"percentage" db:"percentage" json:"percentage"`
	Tier       Tier    `csv:"tier"       db:"tier"       json:"tier"`
}

type DimensionSummary struct {
	Dimension    Dimension     `json:"dimension"`
	Total        int64         `json:"total"`
	Series       []SeriesEntry `json:"series"`
	All          []SeriesEntry `json:"all"`
	MostFrequent *SeriesEntry  `json:"most_frequent,omitempty"`
}

type ModelPerformance struct {
	Accuracy     float64 `json:"accuracy"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1Score      float64 `json:"f1_score"`
	TotalSamples int64   `json:"total_samples"`
	ValidSamples int64   `json:"valid_samples"`
	NaNSamples   int64   `json:"nan_samples"`
}

// Analytics is the display-ready view model assembled from one result.
type Analytics struct {
	ID              int64             `json:"id,omitempty"`
	FileID          ID                `json:"file_id"`
	JobID           ID                `json:"job_id"`
	ResultID        ID                `json:"result_id"`
	AIScore         *float64          `json:"ai_score,omitempty"`
	ConfidenceLevel *float64          `json:"confidence_level,omitempty"`
	TotalErrors     int64             `json:"total_errors"`
	ErrorRate       float64           `json:"error_rate"`
	Performance     *ModelPerformance `json:"model_performance,omitempty"`
	Shapes          DimensionSummary  `json:"shapes"`
	Parts           DimensionSummary  `json:"parts"`
	Modules         DimensionSummary  `json:"modules"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (a *Analytics) Dimensions() []*DimensionSummary {
	return []*DimensionSummary{&a.Shapes, &a.Parts, &a.Modules}
}

// AnalysisRecord is one stored row of processing history.
type AnalysisRecord struct {
	ID              int64     `db:"id"               json:"id"`
	FileID          ID        `db:"file_id"          json:"file_id"`
	JobID           ID        `db:"job_id"           json:"job_id"`
	ResultID        ID        `db:"result_id"        json:"result_id"`
	TotalErrors     int64     `db:"total_errors"     json:"total_errors"`
	ErrorRate       float64   `db:"error_rate"       json:"error_rate"`
	AIScore         *float64  `db:"ai_score"         json:"ai_score,omitempty"`
	ConfidenceLevel *float64  `db:"confidence_level" json:"confidence_level,omitempty"`
	TopShape        string    `db:"top_shape"        json:"top_shape,omitempty"`
	TopPart         string    `db:"top_part"         json:"top_part,omitempty"`
	TopModule       string    `db:"top_module"       json:"top_module,omitempty"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
}

func NewAnalysisRecord(a *Analytics) *AnalysisRecord {
	return &AnalysisRecord{
		FileID:          a.FileID,
		JobID:           a.JobID,
		ResultID:        a.ResultID,
		TotalErrors:     a.TotalErrors,
		ErrorRate:       a.ErrorRate,
		AIScore:         a.AIScore,
		ConfidenceLevel: a.ConfidenceLevel,
		TopShape:        mostFrequentName(a.Shapes),
		TopPart:         mostFrequentName(a.Parts),
		TopModule:       mostFrequentName(a.Modules),
		CreatedAt:       a.CreatedAt,
	}
}

func mostFrequentName(s DimensionSummary) string {
	if s.MostFrequent == nil {
		return ""
	}

	return s.MostFrequent.Name
}

// DimensionEntry is a display series entry stored with its dimension and position.
type DimensionEntry struct {
	AnalysisID int64     `db:"analysis_id" json:"-"`
	Dimension  Dimension `db:"dimension"   json:"dimension"`
	Position   int       `db:"position"    json:"position"`
	SeriesEntry
}

// SeriesEntries flattens the display series of every dimension.
func (a *Analytics) SeriesEntries() []*DimensionEntry {
	var entries []*DimensionEntry

	for _, dim := range a.Dimensions() {
		for i, entry := range dim.Series {
			entries = append(entries, &DimensionEntry{
				AnalysisID:  a.ID,
				Dimension:   dim.Dimension,
				Position:    i,
				SeriesEntry: entry,
			})
		}
	}

	return entries
}
