// Package comparator decides whether two result sets are equivalent under
// the learning-oriented equality rules: row order matters (a missing ORDER BY
// is a real mistake), column order does not, and column names match
// exact-case. Values compare exactly after scan-type normalization; there is
// no floating tolerance because the datasets are synthetic and exact.
package comparator

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"

	"sqldojo/internal/domain"
)

// ComparisonReport is the structured diff consumed by feedback generation.
// It is deterministic and independent of the generation provider, so hints
// degrade gracefully when the provider is unavailable.
type ComparisonReport struct {
	Equivalent       bool
	RowCountMismatch bool
	ExpectedRows     int
	ActualRows       int
	// Columns present in the expected set but not the candidate, and vice versa.
	MissingColumns []string
	ExtraColumns   []string
	// FirstDiffRow is the index of the first positionally differing row,
	// -1 when no row-level difference was found.
	FirstDiffRow int
	DiffColumns  []string
}

// Equivalent reports whether the candidate set reproduces the expected set.
func Equivalent(expected, actual *domain.ResultSet) bool {
	return Diff(expected, actual).Equivalent
}

// Diff compares the two sets and describes the first difference found.
func Diff(expected, actual *domain.ResultSet) *ComparisonReport {
	report := &ComparisonReport{
		ExpectedRows: expected.RowCount(),
		ActualRows:   actual.RowCount(),
		FirstDiffRow: -1,
	}

	report.MissingColumns, report.ExtraColumns = columnSetDiff(expected, actual)

	if report.ExpectedRows != report.ActualRows {
		report.RowCountMismatch = true
	}

	if !report.RowCountMismatch && len(report.MissingColumns) == 0 && len(report.ExtraColumns) == 0 {
		shared := sharedColumns(expected, actual)
		for i := range expected.Rows {
			diffCols := rowDiff(expected.Rows[i], actual.Rows[i], shared)
			if len(diffCols) > 0 {
				report.FirstDiffRow = i
				report.DiffColumns = diffCols
				break
			}
		}
	}

	report.Equivalent = !report.RowCountMismatch &&
		len(report.MissingColumns) == 0 &&
		len(report.ExtraColumns) == 0 &&
		report.FirstDiffRow == -1
	return report
}

func columnSetDiff(expected, actual *domain.ResultSet) (missing, extra []string) {
	expectedSet := make(map[string]struct{}, len(expected.Columns))
	for _, c := range expected.Columns {
		expectedSet[c] = struct{}{}
	}
	actualSet := make(map[string]struct{}, len(actual.Columns))
	for _, c := range actual.Columns {
		actualSet[c] = struct{}{}
	}
	for _, c := range expected.Columns {
		if _, ok := actualSet[c]; !ok {
			missing = append(missing, c)
		}
	}
	for _, c := range actual.Columns {
		if _, ok := expectedSet[c]; !ok {
			extra = append(extra, c)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

func sharedColumns(expected, actual *domain.ResultSet) []string {
	actualSet := make(map[string]struct{}, len(actual.Columns))
	for _, c := range actual.Columns {
		actualSet[c] = struct{}{}
	}
	var shared []string
	for _, c := range expected.Columns {
		if _, ok := actualSet[c]; ok {
			shared = append(shared, c)
		}
	}
	return shared
}

func rowDiff(expected, actual domain.Row, columns []string) []string {
	var diff []string
	for _, col := range columns {
		if !valuesEqual(expected[col], actual[col]) {
			diff = append(diff, col)
		}
	}
	return diff
}

func valuesEqual(a, b any) bool {
	na := NormalizeValue(a)
	nb := NormalizeValue(b)
	if na == nil || nb == nil {
		return na == nil && nb == nil
	}
	return na == nb
}

// NormalizeValue collapses the different scan and JSON decode shapes a value
// can arrive in (int64 from the driver vs float64 from a JSON round-trip,
// []byte text, time.Time dates) into one canonical comparable form. Integral
// floats collapse to int64; non-integral floats stay float64 and compare
// exactly.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		return val
	case string:
		return val
	case []byte:
		return string(val)
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return normalizeFloat(float64(val))
	case float64:
		return normalizeFloat(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return val.String()
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		// Fall back to a stable string form for exotic driver types.
		return toString(val)
	}
}

func normalizeFloat(f float64) any {
	if math.Trunc(f) == f && !math.IsInf(f, 0) &&
		f >= math.MinInt64 && f <= math.MaxInt64 {
		return int64(f)
	}
	return f
}

func toString(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return strconv.Quote("unsupported value")
	}
	return string(b)
}
