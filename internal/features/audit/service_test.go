package audit

import (
	"context"
	"errors"
	"testing"

	common_models "amigo-admin/internal/common/models"
	"amigo-admin/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	logs []common_models.AuditLog
}

func (m *memoryRepo) Create(_ context.Context, log common_models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *memoryRepo) List(_ context.Context, _ map[string]interface{}, _, _ int64) ([]common_models.AuditLog, error) {
	out := make([]common_models.AuditLog, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

type nameFinder struct {
	names map[string]string
	err   error
}

func (f nameFinder) DisplayNames(context.Context, []string) (map[string]string, error) {
	return f.names, f.err
}

func TestLogChangeTakesActorFromContext(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewAuditService(repo, nameFinder{})

	ctx := identity.WithContext(context.Background(), &identity.Identity{UID: "admin-1", Email: "ops@example.com"})
	require.NoError(t, svc.LogChange(ctx, common_models.AuditActionUpdate, "users", "u-9", map[string]common_models.Change{
		"role": {Old: "user", New: "subadmin"},
	}))
	require.NoError(t, svc.LogChange(context.Background(), common_models.AuditActionDelete, "groups", "g-1", nil))

	require.Len(t, repo.logs, 2)
	assert.Equal(t, "admin-1", repo.logs[0].ActorID)
	assert.Equal(t, "ops@example.com", repo.logs[0].ActorEmail)
	assert.Equal(t, "system", repo.logs[1].ActorID)
}

func TestListLogsNamesActors(t *testing.T) {
	repo := &memoryRepo{logs: []common_models.AuditLog{
		{ActorID: "system"},
		{ActorID: "a1"},
		{ActorID: "a2", ActorEmail: "two@example.com"},
		{ActorID: "a3"},
	}}

	logs, err := NewAuditService(repo, nameFinder{names: map[string]string{"a1": "Ann"}}).ListLogs(context.Background(), nil, 0, 0)
	require.NoError(t, err)

	names := []string{}
	for _, l := range logs {
		names = append(names, l.ActorName)
	}
	assert.Equal(t, []string{"System", "Ann", "two@example.com", "Unknown User"}, names)

	logs, err = NewAuditService(repo, nameFinder{err: errors.New("down")}).ListLogs(context.Background(), nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "Unknown User", logs[1].ActorName)
}
