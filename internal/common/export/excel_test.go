package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestToExcel(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)
	columns := []Column{
		{Key: "uid", Header: "UID"},
		{Key: "members", Header: "Members"},
		{Key: "seen", Header: "Last Seen"},
		{Key: "online", Header: "Online"},
	}
	rows := []map[string]any{
		{"uid": "u1", "members": []string{"a", "b"}, "seen": &now, "online": true},
		{"uid": "u2"},
	}

	data, filename, err := ToExcel("Notification Logs", columns, rows, now)
	require.NoError(t, err)
	assert.Equal(t, "notification-logs-2025-06-02.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Notification Logs")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"UID", "Members", "Last Seen", "Online"}, got[0])
	assert.Equal(t, []string{"u1", "a, b", "2025-06-02 08:30:00", "TRUE"}, got[1])
	assert.Equal(t, "u2", got[2][0])
}
