package query

import (
	"fmt"
	"sort"
	"strings"
)

// renderValue formats a value for the diagnostic SQL string. Strings are
// single-quoted; everything else uses its default formatting.
func renderValue(v Value) string {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case nil:
		return "NULL"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// renderValueList formats a slice value for IN / NOT IN rendering. Non-slice
// values render as a single-element list.
func renderValueList(v Value) string {
	switch vals := v.(type) {
	case []any:
		parts := make([]string, len(vals))
		for i, e := range vals {
			parts[i] = renderValue(e)
		}
		return strings.Join(parts, ", ")
	case []string:
		parts := make([]string, len(vals))
		for i, e := range vals {
			parts[i] = renderValue(e)
		}
		return strings.Join(parts, ", ")
	case []int:
		parts := make([]string, len(vals))
		for i, e := range vals {
			parts[i] = fmt.Sprintf("%d", e)
		}
		return strings.Join(parts, ", ")
	default:
		return renderValue(v)
	}
}

// sortStrings sorts a string slice in place. Used to keep the diagnostic
// SELECT rendering stable across runs, since selections are stored in a map.
func sortStrings(s []string) {
	sort.Strings(s)
}

// IntPtr is a helper that returns a pointer to an int.
func IntPtr(i int) *int {
	return &i
}

// StringPtr is a helper that returns a pointer to a string.
func StringPtr(s string) *string {
	return &s
}
