package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

// Threshold assigns Tier to every count >= Min.
type Threshold struct {
	Min  int64
	Tier domain.Tier
}

// Classifier maps a count to a tier with fixed cut points.
// The zero value classifies everything as Low.
type Classifier struct {
	thresholds []Threshold
}

var tierRank = map[domain.Tier]int{
	domain.TierLow:      0,
	domain.TierMedium:   1,
	domain.TierHigh:     2,
	domain.TierCritical: 3,
}

var (
	ShapeClassifier = mustClassifier(
		Threshold{Min: 31, Tier: domain.TierCritical},
		Threshold{Min: 21, Tier: domain.TierHigh},
		Threshold{Min: 11, Tier: domain.TierMedium},
	)
	PartClassifier = mustClassifier(
		Threshold{Min: 10, Tier: domain.TierHigh},
		Threshold{Min: 5, Tier: domain.TierMedium},
	)
	ModuleClassifier = mustClassifier(
		Threshold{Min: 51, Tier: domain.TierHigh},
		Threshold{Min: 21, Tier: domain.TierMedium},
	)
)

// NewClassifier builds a step function from thresholds. Higher cut points
// must map to strictly higher tiers, otherwise the function is not monotonic.
func NewClassifier(thresholds ...Threshold) (Classifier, error) {
	sorted := slices.Clone(thresholds)
	slices.SortFunc(sorted, func(a, b Threshold) int {
		return cmp.Compare(b.Min, a.Min)
	})

	for i, t := range sorted {
		rank, ok := tierRank[t.Tier]
		if !ok {
			return Classifier{}, fmt.Errorf("unknown tier %q", t.Tier)
		}

		if i == 0 {
			continue
		}

		prev := sorted[i-1]
		if prev.Min == t.Min {
			return Classifier{}, fmt.Errorf("duplicate cut point %d", t.Min)
		}

		if tierRank[prev.Tier] <= rank {
			return Classifier{}, fmt.Errorf("tier %q at %d is not above %q at %d", prev.Tier, prev.Min, t.Tier, t.Min)
		}
	}

	return Classifier{thresholds: sorted}, nil
}

func mustClassifier(thresholds ...Threshold) Classifier {
	c, err := NewClassifier(thresholds...)
	if err != nil {
		panic(err)
	}

	return c
}

func (c Classifier) Classify(count int64) domain.Tier {
	for _, t := range c.thresholds {
		if count >= t.Min {
			return t.Tier
		}
	}

	return domain.TierLow
}

// ClassifierFor returns the calibrated classifier of a dimension.
func ClassifierFor(dimension domain.Dimension) Classifier {
	switch dimension {
	case domain.DimensionShape:
		return ShapeClassifier
	case domain.DimensionPart:
		return PartClassifier
	case domain.DimensionModule:
		return ModuleClassifier
	default:
		return Classifier{}
	}
}
