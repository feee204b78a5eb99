package database

import (
	"strings"
	"time"
)

// Fields reads loosely typed Firestore document data. Documents written by
// different client versions disagree on types, so every getter tolerates
// absence and mismatches.
type Fields map[string]interface{}

func (f Fields) String(key string) string {
	if v, ok := f[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func (f Fields) StringOr(key, fallback string) string {
	if v := f.String(key); v != "" {
		return v
	}
	return fallback
}

func (f Fields) Bool(key string) bool {
	v, _ := f[key].(bool)
	return v
}

func (f Fields) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil && v != ""
}

// Time accepts Firestore timestamps, RFC3339 strings and epoch milliseconds
func (f Fields) Time(key string) *time.Time {
	var t time.Time
	switch v := f[key].(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil
		}
		t = parsed
	case int64:
		t = time.UnixMilli(v)
	case float64:
		t = time.UnixMilli(int64(v))
	default:
		return nil
	}
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func (f Fields) Float(key string) (float64, bool) {
	switch v := f[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func (f Fields) Map(key string) Fields {
	if v, ok := f[key].(map[string]interface{}); ok {
		return Fields(v)
	}
	return nil
}

func (f Fields) Maps(key string) []Fields {
	raw, ok := f[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]Fields, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, Fields(m))
		}
	}
	return out
}
