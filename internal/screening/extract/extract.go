// Package extract provides heuristic traversal over provider-controlled JSON
// bodies whose exact shape is not contractually fixed.
//
// Upstream screening responses nest the interesting fields at unpredictable
// depths and under varying names, so these helpers search decoded JSON
// (map[string]any / []any / scalars) by candidate key instead of imposing a
// rigid schema. They are deliberately tolerant: absence of a field is never an
// error, and CountOccurrences prefers over-counting to missing a record. A
// stricter parser can replace this package without touching callers.
package extract

import "strconv"

// FindFirstValue depth-first searches node for the first present, non-null
// numeric value under any of the candidate keys. Numeric strings are coerced.
// At each object the candidate keys are checked before recursing into child
// objects and list elements. The second return is false when nothing matched.
func FindFirstValue(node any, keys ...string) (float64, bool) {
	switch n := node.(type) {
	case map[string]any:
		for _, key := range keys {
			v, ok := n[key]
			if !ok || v == nil {
				continue
			}
			if f, ok := asNumber(v); ok {
				return f, true
			}
		}
		for _, v := range n {
			if isContainer(v) {
				if f, ok := FindFirstValue(v, keys...); ok {
					return f, true
				}
			}
		}
	case []any:
		for _, v := range n {
			if f, ok := FindFirstValue(v, keys...); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// CountOccurrences walks the entire structure and accumulates a count for
// every candidate key it encounters: list values add their length, numeric
// values add their value, and any other present truthy value adds 1. The walk
// does not short-circuit and also descends into matched values, so nested
// records can be counted more than once. That is acceptable here: the result
// feeds pass/fail checks against zero, not an exact tally.
func CountOccurrences(node any, keys ...string) int {
	total := 0
	switch n := node.(type) {
	case map[string]any:
		for _, key := range keys {
			v, ok := n[key]
			if !ok || v == nil {
				continue
			}
			switch val := v.(type) {
			case []any:
				total += len(val)
			default:
				if f, ok := asNumber(val); ok {
					total += int(f)
				} else if truthy(val) {
					total++
				}
			}
		}
		for _, v := range n {
			if isContainer(v) {
				total += CountOccurrences(v, keys...)
			}
		}
	case []any:
		for _, v := range n {
			total += CountOccurrences(v, keys...)
		}
	}
	return total
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func truthy(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case string:
		return n != ""
	case nil:
		return false
	default:
		return true
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
