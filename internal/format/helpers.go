package format

import (
	"fmt"
	"strings"
	"time"
)

// Payload accessors. API replies are decoded JSON, so numbers arrive as
// float64 and nested objects as map[string]any. The require* variants return
// a FormatError naming the absent field; the opt* variants default like the
// upstream API's optional fields.

func requireString(m map[string]any, key string) (string, error) {
	v, ok := m[key].(string)
	if !ok {
		return "", missingField(key)
	}
	return v, nil
}

func requireList(m map[string]any, key string) ([]any, error) {
	v, ok := m[key].([]any)
	if !ok {
		return nil, missingField(key)
	}
	return v, nil
}

func requireInt(m map[string]any, key string) (int64, error) {
	v, ok := m[key].(float64)
	if !ok {
		return 0, missingField(key)
	}
	return int64(v), nil
}

func optString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func optBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func optMap(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func optList(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

func optInt(m map[string]any, key string, def int64) int64 {
	v, ok := m[key].(float64)
	if !ok {
		return def
	}
	return int64(v)
}

// pagedValues unpacks the Bitbucket paged response wrapper. The values list
// is required; size defaults to the page length and isLastPage to true.
func pagedValues(m map[string]any) ([]any, int64, bool, error) {
	values, err := requireList(m, "values")
	if err != nil {
		return nil, 0, false, err
	}
	total := optInt(m, "size", int64(len(values)))
	isLast := true
	if v, ok := m["isLastPage"].(bool); ok {
		isLast = v
	}
	return values, total, isLast, nil
}

func paginationHint(lines []string, isLast bool, noun string) []string {
	if !isLast {
		lines = append(lines, fmt.Sprintf("\n*More %s available — increase `start` to paginate.*", noun))
	}
	return lines
}

// userDisplayName prefers displayName over name, matching how the upstream
// API populates user records.
func userDisplayName(user map[string]any) string {
	if name := optString(user, "displayName"); name != "" {
		return name
	}
	return optString(user, "name")
}

// timestamp converts epoch milliseconds to a readable UTC date string.
func timestamp(m map[string]any, key string) string {
	v, ok := m[key].(float64)
	if !ok {
		return "unknown"
	}
	return time.UnixMilli(int64(v)).UTC().Format("2006-01-02 15:04") + " UTC"
}

func humanSize(sizeBytes int64) string {
	switch {
	case sizeBytes < 1024:
		return fmt.Sprintf("%d B", sizeBytes)
	case sizeBytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(sizeBytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(sizeBytes)/(1024*1024))
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
