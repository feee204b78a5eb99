package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsTime(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f := Fields{
		"native": ts,
		"iso":    "2025-03-01T10:00:00Z",
		"millis": ts.UnixMilli(),
		"float":  float64(ts.UnixMilli()),
		"bad":    "yesterday",
		"zero":   time.Time{},
	}

	for _, key := range []string{"native", "iso", "millis", "float"} {
		t.Run(key, func(t *testing.T) {
			got := f.Time(key)
			require.NotNil(t, got)
			assert.True(t, got.Equal(ts))
		})
	}
	assert.Nil(t, f.Time("bad"))
	assert.Nil(t, f.Time("zero"))
	assert.Nil(t, f.Time("missing"))
}

func TestFieldsCollections(t *testing.T) {
	f := Fields{
		"members": []interface{}{"a", 3, "", "b"},
		"inner":   []interface{}{map[string]interface{}{"id": "x"}, "skip"},
		"name":    "  Team  ",
		"loc":     map[string]interface{}{"city": "Pune"},
	}

	assert.Equal(t, []string{"a", "b"}, f.Strings("members"))
	assert.Equal(t, []string{}, f.Strings("missing"))
	require.Len(t, f.Maps("inner"), 1)
	assert.Equal(t, "x", f.Maps("inner")[0].String("id"))
	assert.Equal(t, "Team", f.String("name"))
	assert.Equal(t, "Anonymous", f.StringOr("displayName", "Anonymous"))
	assert.Equal(t, "Pune", f.Map("loc").String("city"))
	assert.False(t, f.Has("missing"))
	assert.True(t, f.Has("name"))
}
