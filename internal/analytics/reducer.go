package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
)

// Reduce keeps the keep highest counts and folds the rest into a single
// "Others" entry. Ties keep their input order. An input entry already named
// "Others" is treated as previously grouped and folded back into the bucket,
// so reducing a reduced series is a no-op. Percentages are relative to the
// full total, so they add up to 100 whenever the total is positive.
func Reduce(pairs []domain.Pair, keep int, classifier Classifier) []domain.SeriesEntry {
	keep = max(keep, 0)

	ranked := make([]domain.Pair, 0, len(pairs))
	var others int64

	for _, p := range pairs {
		if p.Key == domain.OthersName {
			others += p.Count
			continue
		}

		ranked = append(ranked, p)
	}

	slices.SortStableFunc(ranked, func(a, b domain.Pair) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(ranked) > keep {
		for _, p := range ranked[keep:] {
			others += p.Count
		}

		ranked = ranked[:keep]
	}

	total := others + Total(ranked)

	series := make([]domain.SeriesEntry, 0, len(ranked)+1)
	for _, p := range ranked {
		series = append(series, newEntry(p, total, classifier))
	}

	if others > 0 {
		series = append(series, newEntry(domain.Pair{Key: domain.OthersName, Count: others}, total, classifier))
	}

	return series
}

// Classify turns every canonical pair into an entry without grouping.
func Classify(pairs []domain.Pair, classifier Classifier) []domain.SeriesEntry {
	total := Total(pairs)

	entries := make([]domain.SeriesEntry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, newEntry(p, total, classifier))
	}

	return entries
}

// MostFrequent returns the highest-count pair, the earliest one on ties.
func MostFrequent(pairs []domain.Pair) (domain.Pair, bool) {
	if len(pairs) == 0 {
		return domain.Pair{}, false
	}

	top := pairs[0]
	for _, p := range pairs[1:] {
		if p.Count > top.Count {
			top = p
		}
	}

	return top, true
}

func newEntry(p domain.Pair, total int64, classifier Classifier) domain.SeriesEntry {
	return domain.SeriesEntry{
		Name:       p.Key,
		Count:      p.Count,
		Percentage: Percentage(p.Count, total),
		Tier:       classifier.Classify(p.Count),
	}
}

func Percentage(count, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return float64(count) / float64(total) * 100
}

// RoundPercentage rounds to two decimals for display.
func RoundPercentage(p float64) float64 {
	return math.Round(p*100) / 100
}
