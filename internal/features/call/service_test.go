package call

import (
	"context"
	"strings"
	"testing"
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/config"
	"amigo-admin/internal/features/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type callers map[string]*user.User

func (c callers) FindByID(_ context.Context, uid string) (*user.User, error) {
	return c[uid], nil
}

func newService(appID, cert string) *TokenServiceImpl {
	cfg := &config.Config{AgoraAppID: appID, AgoraAppCertificate: cert, AgoraTokenTTL: time.Hour}
	dir := callers{
		"caller": {UID: "caller", CallAccess: true},
		"plain":  {UID: "plain"},
	}
	s := NewTokenService(cfg, dir, zap.NewNop()).(*TokenServiceImpl)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

const (
	appID = "970ca35de60c44645bbae8a215061b33"
	cert  = "5cfd2fd1755d40ecb72977518be15d3b"
)

func TestIssue(t *testing.T) {
	admin := &access.Grant{UID: "admin", Role: access.RoleAdmin}

	tests := []struct {
		name   string
		caller string
		grant  *access.Grant
		req    TokenRequest
		kind   apperr.Kind
		role   string
	}{
		{name: "admin with string uid", caller: "admin", grant: admin, req: TokenRequest{ChannelName: "room-1", UID: "alice"}, role: "publisher"},
		{name: "user with call access, numeric uid", caller: "caller", req: TokenRequest{ChannelName: "room-1", UID: float64(42), Role: "subscriber"}, role: "subscriber"},
		{name: "user without call access", caller: "plain", req: TokenRequest{ChannelName: "room-1", UID: "x"}, kind: apperr.PermissionDenied},
		{name: "unknown user", caller: "ghost", req: TokenRequest{ChannelName: "room-1", UID: "x"}, kind: apperr.PermissionDenied},
		{name: "missing uid", caller: "admin", grant: admin, req: TokenRequest{ChannelName: "room-1"}, kind: apperr.InvalidArgument},
		{name: "fractional uid", caller: "admin", grant: admin, req: TokenRequest{ChannelName: "room-1", UID: 1.5}, kind: apperr.InvalidArgument},
		{name: "bool uid", caller: "admin", grant: admin, req: TokenRequest{ChannelName: "room-1", UID: true}, kind: apperr.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newService(appID, cert).Issue(context.Background(), tt.caller, tt.grant, tt.req)
			if tt.role == "" {
				require.Error(t, err)
				assert.Equal(t, tt.kind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(resp.Token, tokenVersion))
			assert.Equal(t, appID, resp.AppID)
			assert.Equal(t, tt.role, resp.Role)
			assert.Equal(t, tt.req.UID, resp.UID)
			assert.Equal(t, int64(3600), resp.ExpiresIn)
			assert.Equal(t, int64(1700000000), resp.GeneratedAt)
			assert.Equal(t, int64(1700003600), resp.Expiration)
		})
	}
}

func TestIssueWithoutCredentials(t *testing.T) {
	s := newService("", "")
	_, err := s.Issue(context.Background(), "admin", &access.Grant{Role: access.RoleAdmin}, TokenRequest{ChannelName: "room", UID: "a"})
	assert.Equal(t, apperr.Internal, apperr.KindOf(err))
	assert.Contains(t, apperr.Message(err), "Agora credentials not configured")

	st := s.Status()
	assert.False(t, st.Config.AppIDConfigured)
	assert.Equal(t, "active", st.Status)
}
