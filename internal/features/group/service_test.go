package group

import (
	"context"
	"fmt"
	"testing"
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryGroups struct {
	groups map[string]*Group
	seq    int
}

func newMemoryGroups(groups ...Group) *memoryGroups {
	m := &memoryGroups{groups: map[string]*Group{}}
	for i := range groups {
		g := groups[i]
		m.groups[g.ID] = &g
	}
	return m
}

func (m *memoryGroups) List(context.Context) ([]Group, error) {
	out := []Group{}
	for _, g := range m.groups {
		out = append(out, *g)
	}
	return out, nil
}

func (m *memoryGroups) ListByOwner(_ context.Context, uid string) ([]Group, error) {
	out := []Group{}
	for _, g := range m.groups {
		if g.CreatedBy == uid {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *memoryGroups) FindByID(_ context.Context, id string) (*Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *memoryGroups) Create(_ context.Context, g *Group) error {
	m.seq++
	g.ID = fmt.Sprintf("g%d", m.seq)
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *memoryGroups) Delete(_ context.Context, id string) error {
	delete(m.groups, id)
	return nil
}

func (m *memoryGroups) AddMember(_ context.Context, id, uid string) error {
	g := m.groups[id]
	for _, existing := range g.Members {
		if existing == uid {
			return nil
		}
	}
	g.Members = append(g.Members, uid)
	return nil
}

func (m *memoryGroups) RemoveMember(_ context.Context, id, uid string, innerGroups []InnerGroup) error {
	g := m.groups[id]
	members := []string{}
	for _, existing := range g.Members {
		if existing != uid {
			members = append(members, existing)
		}
	}
	g.Members = members
	g.InnerGroups = innerGroups
	return nil
}

func (m *memoryGroups) AppendInnerGroup(_ context.Context, id string, ig InnerGroup) error {
	g := m.groups[id]
	g.InnerGroups = append(g.InnerGroups, ig)
	return nil
}

func (m *memoryGroups) SetInnerGroups(_ context.Context, id string, innerGroups []InnerGroup) error {
	m.groups[id].InnerGroups = innerGroups
	return nil
}

func (m *memoryGroups) Count(context.Context) (int64, error) {
	return int64(len(m.groups)), nil
}

type knownUsers []string

func (k knownUsers) FindByIDs(_ context.Context, uids []string) (map[string]*user.User, error) {
	out := map[string]*user.User{}
	for _, uid := range uids {
		for _, known := range k {
			if uid == known {
				out[uid] = &user.User{UID: uid}
			}
		}
	}
	return out, nil
}

type nopAudit struct{}

func (nopAudit) LogChange(context.Context, models.AuditAction, string, string, map[string]models.Change) error {
	return nil
}

func (nopAudit) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]models.AuditLog, error) {
	return nil, nil
}

func newTestService(repo *memoryGroups) *GroupServiceImpl {
	svc := NewGroupService(repo, knownUsers{"u1", "u2", "u3"}, nopAudit{}).(*GroupServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("ig-%d", n)
	}
	return svc
}

var (
	superAdmin = &access.Grant{UID: "boss", Role: access.RoleAdmin}
	subadmin   = &access.Grant{UID: "sub", Role: access.RoleSubadmin}
)

func TestListGroupsScoping(t *testing.T) {
	repo := newMemoryGroups(
		Group{ID: "a", CreatedBy: "sub"},
		Group{ID: "b", CreatedBy: "boss"},
	)
	svc := newTestService(repo)

	all, err := svc.ListGroups(context.Background(), superAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListGroups(context.Background(), subadmin)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "a", own[0].ID)
}

func TestCreateGroup(t *testing.T) {
	svc := newTestService(newMemoryGroups())

	g, err := svc.CreateGroup(context.Background(), CreateGroupRequest{
		Name: " Book club ", Description: "Weekly", Members: []string{"u1", "u1", "u2"},
	}, "sub")
	require.NoError(t, err)
	assert.Equal(t, "Book club", g.Name)
	assert.Equal(t, []string{"u1", "u2"}, g.Members)
	assert.Empty(t, g.InnerGroups)
	assert.True(t, g.IsActive)
	assert.Equal(t, "sub", g.CreatedBy)

	_, err = svc.CreateGroup(context.Background(), CreateGroupRequest{
		Name: "x", Description: "y", Members: []string{"ghost"},
	}, "sub")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeleteGroupOwnership(t *testing.T) {
	repo := newMemoryGroups(Group{ID: "a", CreatedBy: "boss"}, Group{ID: "b", CreatedBy: "sub"})
	svc := newTestService(repo)

	err := svc.DeleteGroup(context.Background(), subadmin, "a")
	assert.Equal(t, apperr.PermissionDenied, apperr.KindOf(err))
	assert.Contains(t, repo.groups, "a")

	require.NoError(t, svc.DeleteGroup(context.Background(), subadmin, "b"))
	require.NoError(t, svc.DeleteGroup(context.Background(), superAdmin, "a"))
	assert.Empty(t, repo.groups)

	err = svc.DeleteGroup(context.Background(), superAdmin, "missing")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestMembers(t *testing.T) {
	repo := newMemoryGroups(Group{
		ID:      "g",
		Members: []string{"u1", "u2"},
		InnerGroups: []InnerGroup{
			{ID: "i1", Members: []string{"u1", "u2"}},
			{ID: "i2", Members: []string{"u2"}},
		},
	})
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.AddMember(ctx, "g", "u3"))
	assert.Equal(t, []string{"u1", "u2", "u3"}, repo.groups["g"].Members)

	assert.Equal(t, apperr.NotFound, apperr.KindOf(svc.AddMember(ctx, "g", "ghost")))

	require.NoError(t, svc.RemoveMember(ctx, "g", "u2"))
	g := repo.groups["g"]
	assert.Equal(t, []string{"u1", "u3"}, g.Members)
	assert.Equal(t, []string{"u1"}, g.InnerGroups[0].Members)
	assert.Empty(t, g.InnerGroups[1].Members)
}

func TestAddInnerGroup(t *testing.T) {
	repo := newMemoryGroups(Group{ID: "g"})
	svc := newTestService(repo)

	ig, err := svc.AddInnerGroup(context.Background(), "g", InnerGroupRequest{
		Name: "Morning", StartTime: "9:00", EndTime: "11:30", Members: []string{"u1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ig-1", ig.ID)
	assert.Equal(t, "09:00", ig.StartTime)
	assert.Len(t, repo.groups["g"].InnerGroups, 1)

	_, err = svc.AddInnerGroup(context.Background(), "g", InnerGroupRequest{
		Name: "Backwards", StartTime: "12:00", EndTime: "11:00",
	})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
	assert.Len(t, repo.groups["g"].InnerGroups, 1)
}

func TestReplaceInnerGroupsIsAllOrNothing(t *testing.T) {
	repo := newMemoryGroups(Group{ID: "g", InnerGroups: []InnerGroup{{ID: "keep", Name: "Old"}}})
	svc := newTestService(repo)

	_, err := svc.ReplaceInnerGroups(context.Background(), "g", []InnerGroupRequest{
		{Name: "Fine", StartTime: "08:00", EndTime: "09:00"},
		{Name: "Broken", StartTime: "10:00", EndTime: "09:00"},
	})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
	assert.Equal(t, "Old", repo.groups["g"].InnerGroups[0].Name)

	groups, err := svc.ReplaceInnerGroups(context.Background(), "g", []InnerGroupRequest{
		{ID: "keep", Name: "Renamed", StartTime: "08:00", EndTime: "09:00"},
		{Name: "New", StartTime: "10:00", EndTime: "11:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "keep", groups[0].ID)
	assert.NotEmpty(t, groups[1].ID)
	assert.Len(t, repo.groups["g"].InnerGroups, 2)
}

func TestApplyTemplate(t *testing.T) {
	repo := newMemoryGroups(Group{ID: "g"})
	svc := newTestService(repo)
	tmpl := InnerGroup{ID: "tmpl", Name: "Lunch", StartTime: "12:00", EndTime: "13:00", Members: []string{"u1"}}

	added, err := svc.ApplyTemplate(context.Background(), "g", tmpl)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.ApplyTemplate(context.Background(), "g", tmpl)
	require.NoError(t, err)
	assert.False(t, added)

	copied := repo.groups["g"].InnerGroups
	require.Len(t, copied, 1)
	assert.NotEqual(t, "tmpl", copied[0].ID)

	// copies do not share member storage with the template
	tmpl.Members[0] = "changed"
	assert.Equal(t, "u1", copied[0].Members[0])
}
