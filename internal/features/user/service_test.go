package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUsers struct {
	users   map[string]*User
	order   []string
	updates map[string]map[string]interface{}
	err     error
}

func newMemoryUsers(users ...User) *memoryUsers {
	m := &memoryUsers{users: map[string]*User{}, updates: map[string]map[string]interface{}{}}
	for i := range users {
		u := users[i]
		m.users[u.UID] = &u
		m.order = append(m.order, u.UID)
	}
	return m
}

func (m *memoryUsers) List(context.Context) ([]User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []User{}
	for _, id := range m.order {
		out = append(out, *m.users[id])
	}
	return out, nil
}

func (m *memoryUsers) FindByID(_ context.Context, uid string) (*User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users[uid], nil
}

func (m *memoryUsers) FindByIDs(_ context.Context, uids []string) (map[string]*User, error) {
	out := map[string]*User{}
	for _, id := range uids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *memoryUsers) FindByPushToken(context.Context, string) (*User, error) { return nil, nil }

func (m *memoryUsers) Update(_ context.Context, uid string, updates map[string]interface{}) error {
	m.updates[uid] = updates
	return nil
}

func (m *memoryUsers) DisplayNames(context.Context, []string) (map[string]string, error) {
	return nil, nil
}

func (m *memoryUsers) Count(context.Context) (Counts, error) { return Counts{}, nil }

type recordingAudit struct {
	changes []map[string]models.Change
}

func (r *recordingAudit) LogChange(_ context.Context, _ models.AuditAction, _ string, _ string, changes map[string]models.Change) error {
	r.changes = append(r.changes, changes)
	return nil
}

func (r *recordingAudit) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]models.AuditLog, error) {
	return nil, nil
}

func TestListUsersSearch(t *testing.T) {
	repo := newMemoryUsers(
		User{UID: "1", DisplayName: "Asha Rao", Email: "asha@example.com"},
		User{UID: "2", DisplayName: "Ben", Email: "ben@RAO.dev"},
		User{UID: "3", DisplayName: "Chen", Email: "chen@example.com"},
	)
	svc := NewUserService(repo, &recordingAudit{})

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"1", "2", "3"}},
		{"rao", []string{"1", "2"}},
		{"  CHEN ", []string{"3"}},
		{"nobody", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			users, err := svc.ListUsers(context.Background(), tt.search)
			require.NoError(t, err)
			ids := []string{}
			for _, u := range users {
				ids = append(ids, u.UID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListUsersStoreFailure(t *testing.T) {
	repo := newMemoryUsers()
	repo.err = errors.New("unavailable")

	_, err := NewUserService(repo, &recordingAudit{}).ListUsers(context.Background(), "")
	assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
}

func TestUpdateRole(t *testing.T) {
	repo := newMemoryUsers(User{UID: "u1", Role: "user"})
	auditLog := &recordingAudit{}
	svc := NewUserService(repo, auditLog)

	require.NoError(t, svc.UpdateRole(context.Background(), "u1", "subadmin", "admin-1"))
	assert.Equal(t, "subadmin", repo.updates["u1"]["role"])
	assert.Equal(t, "admin-1", repo.updates["u1"]["updatedBy"])
	require.Len(t, auditLog.changes, 1)
	assert.Equal(t, models.Change{Old: "user", New: "subadmin"}, auditLog.changes[0]["role"])

	err := svc.UpdateRole(context.Background(), "missing", "admin", "admin-1")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestUpdateCallAccess(t *testing.T) {
	repo := newMemoryUsers(User{UID: "u1"})
	svc := NewUserService(repo, &recordingAudit{})

	require.NoError(t, svc.UpdateCallAccess(context.Background(), "u1", true, "admin-1"))
	assert.Equal(t, true, repo.updates["u1"]["callAccess"])
}

func TestDecodeUserDefaults(t *testing.T) {
	seen := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	u := decodeUser("u1", database.Fields{
		"email":    "x@example.com",
		"fcmToken": "tok",
		"lastSeen": seen,
		"currentLocation": map[string]interface{}{
			"latitude":  18.52,
			"longitude": int64(73),
			"city":      "Pune",
		},
	})

	assert.Equal(t, "Anonymous", u.DisplayName)
	assert.Equal(t, "N/A", u.PhoneNumber)
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.HasFCMToken)
	assert.Equal(t, "x@example.com", u.Name())
	require.NotNil(t, u.CurrentLocation)
	assert.Equal(t, 18.52, *u.CurrentLocation.Latitude)
	assert.Equal(t, 73.0, *u.CurrentLocation.Longitude)
	assert.True(t, u.LastSeen.Equal(seen))
}

func TestExportUsers(t *testing.T) {
	repo := newMemoryUsers(User{UID: "u1", DisplayName: "Asha"})
	svc := NewUserService(repo, &recordingAudit{}).(*UserServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }

	data, filename, err := svc.ExportUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "users-2025-05-01.xlsx", filename)
	assert.NotEmpty(t, data)
}
