package group

import (
	"context"
	"strings"
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/audit"
	"amigo-admin/internal/features/user"

	"github.com/google/uuid"
)

// MemberDirectory confirms that member ids belong to real users
type MemberDirectory interface {
	FindByIDs(ctx context.Context, uids []string) (map[string]*user.User, error)
}

type GroupService interface {
	ListGroups(ctx context.Context, grant *access.Grant) ([]Group, error)
	CreateGroup(ctx context.Context, req CreateGroupRequest, createdBy string) (*Group, error)
	DeleteGroup(ctx context.Context, grant *access.Grant, groupID string) error
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	AddInnerGroup(ctx context.Context, groupID string, req InnerGroupRequest) (*InnerGroup, error)
	ReplaceInnerGroups(ctx context.Context, groupID string, reqs []InnerGroupRequest) ([]InnerGroup, error)
	ApplyTemplate(ctx context.Context, groupID string, tmpl InnerGroup) (bool, error)
}

type GroupServiceImpl struct {
	Repo         GroupRepository
	Members      MemberDirectory
	AuditService audit.AuditService
	now          func() time.Time
	newID        func() string
}

func NewGroupService(repo GroupRepository, members MemberDirectory, auditService audit.AuditService) GroupService {
	return &GroupServiceImpl{
		Repo:         repo,
		Members:      members,
		AuditService: auditService,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// ListGroups scopes the list to the caller's own groups unless it is a super admin
func (s *GroupServiceImpl) ListGroups(ctx context.Context, grant *access.Grant) ([]Group, error) {
	var (
		groups []Group
		err    error
	)
	if grant.IsSuperAdmin() {
		groups, err = s.Repo.List(ctx)
	} else {
		groups, err = s.Repo.ListByOwner(ctx, grant.UID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch groups", err)
	}
	return groups, nil
}

func (s *GroupServiceImpl) CreateGroup(ctx context.Context, req CreateGroupRequest, createdBy string) (*Group, error) {
	members := dedupe(req.Members)
	if err := s.checkMembers(ctx, members); err != nil {
		return nil, err
	}

	now := s.now()
	g := &Group{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Members:     members,
		InnerGroups: []InnerGroup{},
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	if err := s.Repo.Create(ctx, g); err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to create group", err)
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, "groups", g.ID, map[string]models.Change{
		"name":    {New: g.Name},
		"members": {New: g.Members},
	})
	return g, nil
}

func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, grant *access.Grant, groupID string) error {
	if groupID == "" {
		return apperr.New(apperr.InvalidArgument, "groupId is required")
	}
	g, err := s.find(ctx, groupID)
	if err != nil {
		return err
	}
	if !grant.IsSuperAdmin() && g.CreatedBy != grant.UID {
		return apperr.New(apperr.PermissionDenied, "You can only delete groups you created")
	}

	if err := s.Repo.Delete(ctx, groupID); err != nil {
		return apperr.Wrap(apperr.Unavailable, "Failed to delete group", err)
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, "groups", groupID, map[string]models.Change{
		"name": {Old: g.Name},
	})
	return nil
}

func (s *GroupServiceImpl) AddMember(ctx context.Context, groupID, userID string) error {
	if _, err := s.find(ctx, groupID); err != nil {
		return err
	}
	if err := s.checkMembers(ctx, []string{userID}); err != nil {
		return err
	}

	if err := s.Repo.AddMember(ctx, groupID, userID); err != nil {
		return storeError(err, "Failed to add member")
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionMembership, "groups", groupID, map[string]models.Change{
		"members": {New: userID},
	})
	return nil
}

// RemoveMember also strips the user from every inner group of the group
func (s *GroupServiceImpl) RemoveMember(ctx context.Context, groupID, userID string) error {
	g, err := s.find(ctx, groupID)
	if err != nil {
		return err
	}

	if err := s.Repo.RemoveMember(ctx, groupID, userID, withoutMember(g.InnerGroups, userID)); err != nil {
		return storeError(err, "Failed to remove member")
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionMembership, "groups", groupID, map[string]models.Change{
		"members": {Old: userID},
	})
	return nil
}

func (s *GroupServiceImpl) AddInnerGroup(ctx context.Context, groupID string, req InnerGroupRequest) (*InnerGroup, error) {
	if _, err := s.find(ctx, groupID); err != nil {
		return nil, err
	}
	req.ID = ""
	ig, err := s.build(req)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.AppendInnerGroup(ctx, groupID, ig); err != nil {
		return nil, storeError(err, "Failed to add inner group")
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, "inner_groups", groupID+"_"+ig.ID, map[string]models.Change{
		"name":   {New: ig.Name},
		"window": {New: ig.StartTime + "-" + ig.EndTime},
	})
	return &ig, nil
}

// ReplaceInnerGroups validates every entry before writing any of them
func (s *GroupServiceImpl) ReplaceInnerGroups(ctx context.Context, groupID string, reqs []InnerGroupRequest) ([]InnerGroup, error) {
	g, err := s.find(ctx, groupID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]InnerGroup, len(g.InnerGroups))
	for _, ig := range g.InnerGroups {
		existing[ig.ID] = ig
	}

	groups := make([]InnerGroup, 0, len(reqs))
	for _, req := range reqs {
		ig, err := s.build(req)
		if err != nil {
			return nil, err
		}
		if prev, ok := existing[req.ID]; ok && prev.CreatedAt != nil {
			ig.CreatedAt = prev.CreatedAt
		}
		groups = append(groups, ig)
	}

	if err := s.Repo.SetInnerGroups(ctx, groupID, groups); err != nil {
		return nil, storeError(err, "Failed to update inner groups")
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, "groups", groupID, map[string]models.Change{
		"innerGroups": {Old: len(g.InnerGroups), New: len(groups)},
	})
	return groups, nil
}

// ApplyTemplate copies tmpl into the group under a fresh id. It reports
// false when the group already holds the same slot.
func (s *GroupServiceImpl) ApplyTemplate(ctx context.Context, groupID string, tmpl InnerGroup) (bool, error) {
	g, err := s.find(ctx, groupID)
	if err != nil {
		return false, err
	}
	if g.HasSlot(tmpl) {
		return false, nil
	}

	now := s.now()
	cp := tmpl
	cp.ID = s.newID()
	cp.Members = append([]string{}, tmpl.Members...)
	cp.CreatedAt = &now
	if err := s.Repo.AppendInnerGroup(ctx, groupID, cp); err != nil {
		return false, storeError(err, "Failed to apply inner group")
	}
	return true, nil
}

func (s *GroupServiceImpl) build(req InnerGroupRequest) (InnerGroup, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return InnerGroup{}, apperr.New(apperr.InvalidArgument, "Inner group name is required")
	}
	if err := ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return InnerGroup{}, err
	}
	id := req.ID
	if id == "" {
		id = s.newID()
	}
	now := s.now()
	return InnerGroup{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		StartTime:   NormalizeClock(req.StartTime),
		EndTime:     NormalizeClock(req.EndTime),
		Members:     dedupe(req.Members),
		CreatedAt:   &now,
	}, nil
}

func (s *GroupServiceImpl) find(ctx context.Context, groupID string) (*Group, error) {
	g, err := s.Repo.FindByID(ctx, groupID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch group", err)
	}
	if g == nil {
		return nil, apperr.New(apperr.NotFound, "Group not found")
	}
	return g, nil
}

func (s *GroupServiceImpl) checkMembers(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.Members.FindByIDs(ctx, ids)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "Failed to verify members", err)
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return apperr.New(apperr.NotFound, "User not found: "+id)
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func storeError(err error, message string) error {
	if apperr.KindOf(err) != apperr.Internal {
		return err
	}
	return apperr.Wrap(apperr.Unavailable, message, err)
}
