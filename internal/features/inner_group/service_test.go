package inner_group

import (
	"context"
	"errors"
	"testing"
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/group"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTemplates struct {
	items map[string]*Template
}

func (m *memoryTemplates) List(context.Context) ([]Template, error) {
	out := []Template{}
	for _, t := range m.items {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memoryTemplates) FindByID(_ context.Context, id string) (*Template, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memoryTemplates) Create(_ context.Context, t *Template) error {
	t.ID = "t-new"
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

func (m *memoryTemplates) Update(_ context.Context, id string, updates map[string]interface{}) error {
	t := m.items[id]
	t.Name = updates["name"].(string)
	t.StartTime = updates["startTime"].(string)
	t.EndTime = updates["endTime"].(string)
	return nil
}

func (m *memoryTemplates) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memoryTemplates) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

// fakeTargets records applied copies per group
type fakeTargets struct {
	groups  []group.Group
	applied map[string][]group.InnerGroup
	broken  map[string]bool
}

func (f *fakeTargets) ListGroups(context.Context, *access.Grant) ([]group.Group, error) {
	return f.groups, nil
}

func (f *fakeTargets) ApplyTemplate(_ context.Context, groupID string, tmpl group.InnerGroup) (bool, error) {
	if f.broken[groupID] {
		return false, apperr.Wrap(apperr.Unavailable, "Failed to apply inner group", errors.New("deadline exceeded"))
	}
	for _, existing := range f.applied[groupID] {
		if existing.SameSlot(tmpl) {
			return false, nil
		}
	}
	f.applied[groupID] = append(f.applied[groupID], tmpl)
	return true, nil
}

type nopAudit struct{}

func (nopAudit) LogChange(context.Context, models.AuditAction, string, string, map[string]models.Change) error {
	return nil
}

func (nopAudit) ListLogs(context.Context, map[string]interface{}, int64, int64) ([]models.AuditLog, error) {
	return nil, nil
}

var (
	superAdmin = &access.Grant{UID: "boss", Role: access.RoleAdmin}
	subadmin   = &access.Grant{UID: "sub", Role: access.RoleSubadmin}
)

func fixture() (*TemplateServiceImpl, *memoryTemplates, *fakeTargets) {
	repo := &memoryTemplates{items: map[string]*Template{
		"t1": {ID: "t1", Name: "Lunch", StartTime: "12:00", EndTime: "13:00", CreatedBy: "sub"},
		"t2": {ID: "t2", Name: "Night", StartTime: "21:00", EndTime: "23:00", CreatedBy: "boss"},
	}}
	targets := &fakeTargets{
		groups:  []group.Group{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}},
		applied: map[string][]group.InnerGroup{},
		broken:  map[string]bool{},
	}
	svc := NewTemplateService(repo, targets, nopAudit{}).(*TemplateServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, targets
}

func TestListScoping(t *testing.T) {
	svc, _, _ := fixture()

	all, err := svc.List(context.Background(), superAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(context.Background(), subadmin)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "t1", own[0].ID)
}

func TestCreateValidatesWindow(t *testing.T) {
	svc, repo, _ := fixture()

	_, err := svc.Create(context.Background(), TemplateRequest{Name: "Bad", StartTime: "14:00", EndTime: "13:00"}, "sub")
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	tmpl, err := svc.Create(context.Background(), TemplateRequest{Name: "Early", StartTime: "7:00", EndTime: "8:30"}, "sub")
	require.NoError(t, err)
	assert.Equal(t, "07:00", tmpl.StartTime)
	assert.Equal(t, "sub", repo.items["t-new"].CreatedBy)
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	svc, repo, _ := fixture()
	req := TemplateRequest{Name: "Late lunch", StartTime: "13:00", EndTime: "14:00"}

	err := svc.Update(context.Background(), subadmin, "t2", req)
	assert.Equal(t, apperr.PermissionDenied, apperr.KindOf(err))

	require.NoError(t, svc.Update(context.Background(), subadmin, "t1", req))
	assert.Equal(t, "Late lunch", repo.items["t1"].Name)

	assert.Equal(t, apperr.PermissionDenied, apperr.KindOf(svc.Delete(context.Background(), subadmin, "t2")))
	require.NoError(t, svc.Delete(context.Background(), superAdmin, "t2"))
	assert.NotContains(t, repo.items, "t2")

	assert.Equal(t, apperr.NotFound, apperr.KindOf(svc.Delete(context.Background(), superAdmin, "missing")))
}

func TestApply(t *testing.T) {
	svc, _, targets := fixture()
	targets.applied["g2"] = []group.InnerGroup{{ID: "x", Name: "Lunch", StartTime: "12:00", EndTime: "13:00"}}
	targets.broken["g3"] = true

	result, err := svc.Apply(context.Background(), subadmin, "t1", ApplyRequest{All: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, result.Added)
	assert.Equal(t, []string{"g2"}, result.Skipped)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "g3", result.Failed[0].GroupID)
	assert.Equal(t, "Failed to apply inner group", result.Failed[0].Error)

	// applying again is a no-op for groups that already hold the slot
	result, err = svc.Apply(context.Background(), subadmin, "t1", ApplyRequest{GroupIDs: []string{"g1", "g1"}})
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Equal(t, []string{"g1"}, result.Skipped)
}

func TestApplyRequiresTargets(t *testing.T) {
	svc, _, _ := fixture()
	_, err := svc.Apply(context.Background(), superAdmin, "t1", ApplyRequest{})
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))
}
