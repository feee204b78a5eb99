package notification

import (
	"strings"
	"testing"
	"time"

	"amigo-admin/internal/database"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTarget(t *testing.T) {
	token := strings.Repeat("a", 100)
	tests := []struct {
		name    string
		to      string
		toType  string
		want    TargetKind
		wantErr bool
	}{
		{name: "short id", to: "uid-123", want: TargetUser},
		{name: "threshold length is a token", to: token, want: TargetToken},
		{name: "just under threshold", to: token[:99], want: TargetUser},
		{name: "explicit user wins over length", to: token, toType: "userId", want: TargetUser},
		{name: "explicit token", to: "short", toType: "token", want: TargetToken},
		{name: "blank", to: "  ", wantErr: true},
		{name: "unknown type", to: "x", toType: "phone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyTarget(tt.to, tt.toType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestExclude(t *testing.T) {
	got := exclude([]string{"u1", "u2", "u1", " ", "u3", "u2"}, "u3")
	assert.Equal(t, []string{"u1", "u2"}, got)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "chat", stringify("chat"))
	assert.Equal(t, "3", stringify(3))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, `{"a":1}`, stringify(map[string]interface{}{"a": 1}))
	assert.Equal(t, "", stringify(nil))
}

func TestDecodeLogEntry(t *testing.T) {
	ts := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	single := decodeLogEntry("l1", database.Fields{
		"sentBy":       "u1",
		"sentTo":       "u2",
		"status":       "success",
		"messageId":    "m1",
		"notification": map[string]interface{}{"title": "T", "body": "B"},
		"timestamp":    ts,
	})
	assert.Equal(t, []string{"u2"}, single.SentTo)
	assert.Equal(t, StatusSuccess, single.Status)
	assert.Equal(t, "T", single.Notification.Title)
	assert.Equal(t, ts, single.Timestamp)

	bulk := decodeLogEntry("l2", database.Fields{
		"sentTo":          []interface{}{"u1", "u2"},
		"status":          "bulk_success",
		"totalUsers":      int64(2),
		"successfulSends": int64(1),
		"failedSends":     int64(1),
		"results": []interface{}{
			map[string]interface{}{"userId": "u1", "success": true, "messageId": "m1"},
			map[string]interface{}{"recipientId": "u2", "userId": "u2", "success": false, "error": "gone"},
		},
	})
	assert.Equal(t, []string{"u1", "u2"}, bulk.SentTo)
	assert.Equal(t, 2, bulk.TotalUsers)
	require.Len(t, bulk.Results, 2)
	assert.Equal(t, "u1", bulk.Results[0].RecipientID)
	assert.Equal(t, "gone", bulk.Results[1].Error)
}

func TestLogEntryFieldsShape(t *testing.T) {
	single := LogEntry{SentTo: []string{"u2"}, Status: StatusSuccess}.fields()
	assert.Equal(t, "u2", single["sentTo"])

	bulk := LogEntry{SentTo: []string{"u1", "u2"}, Status: StatusBulkSuccess, TotalUsers: 2}.fields()
	assert.Equal(t, []string{"u1", "u2"}, bulk["sentTo"])
	assert.Equal(t, 2, bulk["totalUsers"])
}

func TestBuildMessageDeliveryHints(t *testing.T) {
	msg := buildMessage(PushMessage{Token: "t1", Title: "T", Body: "B", Data: map[string]string{"k": "v"}})

	assert.Equal(t, "t1", msg.Token)
	assert.Equal(t, "v", msg.Data["k"])
	require.NotNil(t, msg.Android)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "default", msg.Android.Notification.Sound)
	assert.Equal(t, "chat-messages", msg.Android.Notification.ChannelID)
	assert.Equal(t, messaging.PriorityHigh, msg.Android.Notification.Priority)
	require.NotNil(t, msg.APNS)
	assert.Equal(t, "10", msg.APNS.Headers["apns-priority"])
	assert.Equal(t, 1, *msg.APNS.Payload.Aps.Badge)
	assert.True(t, msg.APNS.Payload.Aps.ContentAvailable)
}
