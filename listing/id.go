package listing

import (
	"fmt"
	"strconv"
)

// NormalizeID renders an identifier that may arrive as a JSON number or a
// string into its canonical decimal form. Different endpoints serialize
// foreign keys inconsistently, so both representations must be tolerated.
func NormalizeID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		if n, err := strconv.ParseFloat(id, 64); err == nil {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}

		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case uint:
		return strconv.FormatUint(uint64(id), 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// SameID reports whether two identifiers are equal after normalization,
// so "7" matches 7 regardless of which endpoint produced either value.
// Two empty identifiers never match.
func SameID(a, b any) bool {
	na, nb := NormalizeID(a), NormalizeID(b)
	if na == "" || nb == "" {
		return false
	}

	return na == nb
}
