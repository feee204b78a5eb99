package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longToken = strings.Repeat("x", 152)

func single(to, toType string) SendRequest {
	return SendRequest{
		To:           to,
		ToType:       toType,
		Notification: Payload{Title: "Ping", Body: "New message"},
		Data:         map[string]interface{}{"chatId": "c1"},
	}
}

func TestSendRules(t *testing.T) {
	admin := Caller{UID: "u1", Grant: &access.Grant{UID: "u1", Role: access.RoleAdmin}}
	member := Caller{UID: "u1"}

	tests := []struct {
		name   string
		caller Caller
		req    SendRequest
		kind   apperr.Kind
	}{
		{name: "unknown user", caller: member, req: single("ghost", ""), kind: apperr.NotFound},
		{name: "user without token", caller: member, req: single("u2", "userId"), kind: apperr.InvalidArgument},
		{name: "self send by user id", caller: member, req: single("u1", ""), kind: apperr.PermissionDenied},
		{name: "self send by own token", caller: member, req: single("t1", "token"), kind: apperr.PermissionDenied},
		{name: "bad target type", caller: admin, req: single("u3", "email"), kind: apperr.InvalidArgument},
		{name: "missing body", caller: admin, req: SendRequest{To: "u3", Notification: Payload{Title: "x"}}, kind: apperr.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service.Send(context.Background(), tt.caller, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Empty(t, f.gateway.sent)
		})
	}
}

func TestSendAdminMaySelfSend(t *testing.T) {
	f := newFixture()
	caller := Caller{UID: "u1", Grant: &access.Grant{UID: "u1", Role: access.RoleSubadmin}}

	id, err := f.service.Send(context.Background(), caller, single("u1", ""))
	require.NoError(t, err)
	assert.Equal(t, "msg-t1", id)

	require.Len(t, f.logs.entries, 1)
	entry := f.logs.entries[0]
	assert.Equal(t, StatusSuccess, entry.Status)
	assert.Equal(t, "subadmin", entry.UserRole)
	assert.Equal(t, 2, entry.FCMTokenLength)
	assert.Equal(t, []realtime.EventType{realtime.EventNotificationSent}, f.feed.events)
}

func TestSendToRawToken(t *testing.T) {
	f := newFixture()
	id, err := f.service.Send(context.Background(), Caller{UID: "u3"}, single(longToken, ""))
	require.NoError(t, err)
	assert.Equal(t, "msg-"+longToken, id)

	require.Len(t, f.gateway.sent, 1)
	assert.Equal(t, "unknown", f.gateway.sent[0].Data["recipientId"])
	assert.Equal(t, "c1", f.gateway.sent[0].Data["chatId"])
	assert.Equal(t, []string{"unknown"}, f.logs.entries[0].SentTo)
	assert.Equal(t, "user", f.logs.entries[0].UserRole)
}

func TestSendProviderFailure(t *testing.T) {
	f := newFixture()
	f.gateway.failing["t3"] = true

	_, err := f.service.Send(context.Background(), Caller{UID: "u1"}, single("u3", ""))
	assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
	assert.Equal(t, "Failed to send notification", apperr.Message(err))

	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, StatusError, f.logs.entries[0].Status)
	assert.Equal(t, []string{"u3"}, f.logs.entries[0].SentTo)
	assert.Equal(t, []realtime.EventType{realtime.EventNotificationFailed}, f.feed.events)
}

func TestSendLookupFailure(t *testing.T) {
	f := newFixture()
	f.recipients.err = errors.New("unavailable")

	_, err := f.service.Send(context.Background(), Caller{UID: "u1"}, single("u3", ""))
	assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
}

func TestListLogsClampsLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: 0, want: 50},
		{in: -3, want: 50},
		{in: 20, want: 20},
		{in: 5000, want: 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LogQuery{Limit: tt.in}.normalized().Limit)
	}
}
