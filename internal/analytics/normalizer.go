package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/tidwall/gjson"
)

// shape is the detected representation of a raw count collection.
type shape int

const (
	shapeUnknown    shape = iota
	shapeCountMap         // {"C-0402": 35}
	shapeObjectMap        // {"C-0402": {"ErrorCount": 35}}
	shapePairList         // [["C-0402", 35]]
	shapeRecordList       // [{"name": "C-0402", "count": 35}]
)

func (s shape) String() string {
	switch s {
	case shapeCountMap:
		return "count_map"
	case shapeObjectMap:
		return "object_map"
	case shapePairList:
		return "pair_list"
	case shapeRecordList:
		return "record_list"
	default:
		return "unknown"
	}
}

var (
	countFields = []string{"count", "ErrorCount", "error_count", "errors", "error", "value", "total"}
	nameFields  = []string{"name", "label", "key", "shape", "part", "part_number", "module", "component"}
)

// Normalize converts any supported raw count collection into canonical pairs
// in the order they appear in the document. Uncoercible counts become 0 and
// repeated keys are merged into their first occurrence.
func Normalize(raw gjson.Result) []domain.Pair {
	pairs, _ := normalize(raw)
	return pairs
}

func normalize(raw gjson.Result) ([]domain.Pair, shape) {
	raw = unwrap(raw)

	var pairs []domain.Pair

	detected := detect(raw)
	switch detected {
	case shapeCountMap, shapeObjectMap:
		pairs = fromMap(raw)
	case shapePairList:
		pairs = fromPairList(raw)
	case shapeRecordList:
		pairs = fromRecordList(raw)
	}

	return merge(pairs), detected
}

// NormalizeJSON is Normalize over a raw JSON document. Invalid JSON yields no pairs.
func NormalizeJSON(data []byte) []domain.Pair {
	if !gjson.ValidBytes(data) {
		return nil
	}

	return Normalize(gjson.ParseBytes(data))
}

// unwrap decodes a collection that arrived double-encoded as a JSON string.
func unwrap(raw gjson.Result) gjson.Result {
	if raw.Type != gjson.String {
		return raw
	}

	s := strings.TrimSpace(raw.Str)
	if !gjson.Valid(s) {
		return raw
	}

	inner := gjson.Parse(s)
	if inner.IsObject() || inner.IsArray() {
		return inner
	}

	return raw
}

func detect(raw gjson.Result) shape {
	var first gjson.Result
	var found bool

	switch {
	case raw.IsObject():
		raw.ForEach(func(_, value gjson.Result) bool {
			first, found = value, true
			return false
		})

		if found && first.IsObject() {
			return shapeObjectMap
		}

		return shapeCountMap

	case raw.IsArray():
		raw.ForEach(func(_, value gjson.Result) bool {
			first, found = value, true
			return false
		})

		switch {
		case !found:
			return shapeUnknown
		case first.IsArray():
			return shapePairList
		case first.IsObject():
			return shapeRecordList
		}
	}

	return shapeUnknown
}

func fromMap(raw gjson.Result) []domain.Pair {
	var pairs []domain.Pair

	raw.ForEach(func(key, value gjson.Result) bool {
		pairs = append(pairs, domain.Pair{Key: key.String(), Count: countOf(value)})
		return true
	})

	return pairs
}

func fromPairList(raw gjson.Result) []domain.Pair {
	var pairs []domain.Pair

	raw.ForEach(func(_, item gjson.Result) bool {
		if !item.IsArray() {
			return true
		}

		tuple := item.Array()
		if len(tuple) == 0 {
			return true
		}

		pair := domain.Pair{Key: tuple[0].String()}
		if len(tuple) > 1 {
			pair.Count = countOf(tuple[1])
		}

		pairs = append(pairs, pair)

		return true
	})

	return pairs
}

func fromRecordList(raw gjson.Result) []domain.Pair {
	var pairs []domain.Pair

	raw.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}

		name, ok := recordName(item)
		if !ok {
			return true
		}

		pairs = append(pairs, domain.Pair{Key: name, Count: countOf(item)})

		return true
	})

	return pairs
}

func recordName(record gjson.Result) (string, bool) {
	for _, field := range nameFields {
		value := record.Get(field)
		if value.Type == gjson.String || value.Type == gjson.Number {
			return value.String(), true
		}
	}

	return "", false
}

// countOf coerces a scalar or a count-bearing object to a non-negative count.
func countOf(value gjson.Result) int64 {
	if value.IsObject() {
		for _, field := range countFields {
			if v := value.Get(field); v.Exists() {
				return toCount(coerceFloat(v))
			}
		}

		return 0
	}

	return toCount(coerceFloat(value))
}

func coerceFloat(value gjson.Result) float64 {
	var f float64

	switch value.Type {
	case gjson.Number:
		f = value.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

func toCount(f float64) int64 {
	switch {
	case f <= 0:
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(math.Round(f))
	}
}

func merge(pairs []domain.Pair) []domain.Pair {
	if len(pairs) == 0 {
		return []domain.Pair{}
	}

	index := make(map[string]int, len(pairs))
	merged := make([]domain.Pair, 0, len(pairs))

	for _, p := range pairs {
		if i, ok := index[p.Key]; ok {
			merged[i].Count += p.Count
			continue
		}

		index[p.Key] = len(merged)
		merged = append(merged, p)
	}

	return merged
}

// Total sums the counts of canonical pairs.
func Total(pairs []domain.Pair) int64 {
	var total int64
	for _, p := range pairs {
		total += p.Count
	}

	return total
}
