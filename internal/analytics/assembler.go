package analytics

import (
	"log/slog"
	"time"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/tidwall/gjson"
)

// DimensionSpec describes where a dimension lives in prediction data and how
// it is displayed. Fields are probed in order; the first present one wins.
type DimensionSpec struct {
	Dimension  domain.Dimension
	Fields     []string
	Keep       int
	Classifier Classifier
}

var DefaultDimensions = []DimensionSpec{
	{
		Dimension: domain.DimensionShape,
		Fields: []string{
			"shapes",
			"all_shapes_errors",
			"error_distribution_by_shape",
			"top_shapes",
			"top_5_shapes_with_errors",
		},
		Keep:       4,
		Classifier: ShapeClassifier,
	},
	{
		Dimension: domain.DimensionPart,
		Fields: []string{
			"parts",
			"all_parts_errors",
			"error_distribution_by_part_number",
			"top_error_partnumbers",
			"top_5_parts_with_errors",
		},
		Keep:       4,
		Classifier: PartClassifier,
	},
	{
		Dimension: domain.DimensionModule,
		Fields: []string{
			"modules",
			"all_modules_errors",
			"error_distribution_by_module",
			"top_modules",
			"top_5_modules_with_errors",
		},
		Keep:       5,
		Classifier: ModuleClassifier,
	},
}

var (
	totalErrorsFields = []string{"total_errors", "error_summary.PredictedErrors"}
	errorRateFields   = []string{"error_rate", "error_summary.ErrorRate"}
)

type Assembler struct {
	log        *slog.Logger
	dimensions []DimensionSpec
	now        func() time.Time
}

func NewAssembler(log *slog.Logger, dimensions ...DimensionSpec) *Assembler {
	if len(dimensions) == 0 {
		dimensions = DefaultDimensions
	}

	return &Assembler{
		log:        log,
		dimensions: dimensions,
		now:        time.Now,
	}
}

// Assemble builds the view model of one result. It never fails: missing or
// malformed fields degrade to empty series and zero metrics.
func (a *Assembler) Assemble(fileID domain.ID, result *domain.ProcessingResult) *domain.Analytics {
	analytics := &domain.Analytics{
		FileID:          fileID,
		JobID:           result.JobID,
		ResultID:        result.ID,
		AIScore:         result.AIScore,
		ConfidenceLevel: result.ConfidenceLevel,
		CreatedAt:       a.now(),
	}

	if result.CreatedAt != nil && !result.CreatedAt.IsZero() {
		analytics.CreatedAt = result.CreatedAt.Time
	}

	data := parsePredictionData(result.PredictionData)

	log := a.log.With(
		slog.String("file_id", fileID.String()),
		slog.String("result_id", result.ID.String()),
	)

	for _, spec := range a.dimensions {
		summary := a.summarize(log, data, spec)

		switch spec.Dimension {
		case domain.DimensionShape:
			analytics.Shapes = summary
		case domain.DimensionPart:
			analytics.Parts = summary
		case domain.DimensionModule:
			analytics.Modules = summary
		}
	}

	analytics.TotalErrors = toCount(coerceFloat(lookup(data, totalErrorsFields...)))
	analytics.ErrorRate = coerceFloat(lookup(data, errorRateFields...))
	analytics.Performance = modelPerformance(data)

	return analytics
}

func (a *Assembler) summarize(log *slog.Logger, data gjson.Result, spec DimensionSpec) domain.DimensionSummary {
	raw := lookup(data, spec.Fields...)
	if !raw.Exists() {
		log.Debug("dimension missing from prediction data", slog.String("dimension", string(spec.Dimension)))
	}

	pairs, detected := normalize(raw)

	log.Debug("normalized dimension",
		slog.String("dimension", string(spec.Dimension)),
		slog.String("shape", detected.String()),
		slog.Int("keys", len(pairs)),
	)

	summary := domain.DimensionSummary{
		Dimension: spec.Dimension,
		Total:     Total(pairs),
		Series:    Reduce(pairs, spec.Keep, spec.Classifier),
		All:       Classify(pairs, spec.Classifier),
	}

	if top, ok := MostFrequent(pairs); ok {
		entry := newEntry(top, summary.Total, spec.Classifier)
		summary.MostFrequent = &entry
	}

	return summary
}

func parsePredictionData(data []byte) gjson.Result {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}
	}

	return unwrap(gjson.ParseBytes(data))
}

func lookup(data gjson.Result, paths ...string) gjson.Result {
	if !data.IsObject() {
		return gjson.Result{}
	}

	for _, path := range paths {
		if value := data.Get(path); value.Exists() && value.Type != gjson.Null {
			return value
		}
	}

	return gjson.Result{}
}

func modelPerformance(data gjson.Result) *domain.ModelPerformance {
	perf := lookup(data, "model_performance")
	if !perf.IsObject() {
		return nil
	}

	return &domain.ModelPerformance{
		Accuracy:     coerceFloat(perf.Get("accuracy")),
		Precision:    coerceFloat(perf.Get("precision")),
		Recall:       coerceFloat(perf.Get("recall")),
		F1Score:      coerceFloat(perf.Get("f1_score")),
		TotalSamples: toCount(coerceFloat(perf.Get("total_samples"))),
		ValidSamples: toCount(coerceFloat(perf.Get("valid_samples"))),
		NaNSamples:   toCount(coerceFloat(perf.Get("nan_samples"))),
	}
}
