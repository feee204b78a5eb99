package access

import (
	"context"
	"errors"
	"testing"

	"amigo-admin/internal/common/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmins struct {
	records map[string]*AdminRecord
	err     error
	calls   int
}

func (f *fakeAdmins) LookupAdmin(_ context.Context, uid string) (*AdminRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[uid], nil
}

func TestResolve(t *testing.T) {
	admins := &fakeAdmins{records: map[string]*AdminRecord{
		"root-with-record": {Role: RoleSubadmin, Permissions: nil, IsActive: false},
		"admin":            {Role: RoleAdmin, IsActive: true},
		"sub":              {Role: RoleSubadmin, Permissions: []string{"manage_chats", "bogus", "notifications"}, IsActive: true},
		"sub-empty":        {Role: RoleSubadmin, IsActive: true},
		"inactive":         {Role: RoleAdmin, Permissions: []string{"dashboard"}, IsActive: false},
	}}
	r := newResolver([]string{"root", "root-with-record"}, admins)

	tests := []struct {
		name      string
		uid       string
		wantKind  apperr.Kind
		wantErr   bool
		wantPerms []Permission
		wantSuper bool
	}{
		{name: "bootstrap gets everything", uid: "root", wantPerms: AllPermissions, wantSuper: true},
		{name: "bootstrap ignores stored record", uid: "root-with-record", wantPerms: AllPermissions, wantSuper: true},
		{name: "admin role gets everything", uid: "admin", wantPerms: AllPermissions, wantSuper: true},
		{name: "subadmin uses stored tags", uid: "sub", wantPerms: []Permission{PermissionManageChats, PermissionNotifications}},
		{name: "subadmin without tags holds nothing", uid: "sub-empty", wantPerms: []Permission{}},
		{name: "inactive is denied", uid: "inactive", wantErr: true, wantKind: apperr.PermissionDenied},
		{name: "unknown subject is denied", uid: "stranger", wantErr: true, wantKind: apperr.PermissionDenied},
		{name: "empty uid is unauthenticated", uid: "", wantErr: true, wantKind: apperr.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := r.Resolve(context.Background(), tt.uid)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPerms, grant.List())
			assert.Equal(t, tt.wantSuper, grant.IsSuperAdmin())
		})
	}
}

func TestResolveStoreFailure(t *testing.T) {
	r := newResolver(nil, &fakeAdmins{err: errors.New("firestore unavailable")})

	_, err := r.Resolve(context.Background(), "someone")
	require.Error(t, err)
	assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
}

func TestBootstrapSkipsStore(t *testing.T) {
	admins := &fakeAdmins{}
	r := newResolver([]string{"root"}, admins)

	_, err := r.Resolve(context.Background(), "root")
	require.NoError(t, err)
	assert.Zero(t, admins.calls)
	assert.True(t, r.IsBootstrap("root"))
	assert.False(t, r.IsBootstrap("other"))
}

func TestGrantTabs(t *testing.T) {
	g := &Grant{Permissions: map[Permission]bool{PermissionAdminManagement: true, PermissionDashboard: true}}
	assert.Equal(t, []string{"dashboard", "admins"}, g.Tabs())
	assert.True(t, g.Has(PermissionDashboard))
	assert.False(t, g.Has(PermissionManageChats))

	var none *Grant
	assert.False(t, none.Has(PermissionDashboard))
}
