package inner_group

import (
	"context"
	"strings"
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/audit"
	"amigo-admin/internal/features/group"
)

// GroupTargets is the slice of the group service templates are applied through
type GroupTargets interface {
	ListGroups(ctx context.Context, grant *access.Grant) ([]group.Group, error)
	ApplyTemplate(ctx context.Context, groupID string, tmpl group.InnerGroup) (bool, error)
}

type TemplateService interface {
	List(ctx context.Context, grant *access.Grant) ([]Template, error)
	Create(ctx context.Context, req TemplateRequest, createdBy string) (*Template, error)
	Update(ctx context.Context, grant *access.Grant, id string, req TemplateRequest) error
	Delete(ctx context.Context, grant *access.Grant, id string) error
	Apply(ctx context.Context, grant *access.Grant, id string, req ApplyRequest) (*ApplyResult, error)
}

type TemplateServiceImpl struct {
	Repo         TemplateRepository
	Groups       GroupTargets
	AuditService audit.AuditService
	now          func() time.Time
}

func NewTemplateService(repo TemplateRepository, groups GroupTargets, auditService audit.AuditService) TemplateService {
	return &TemplateServiceImpl{
		Repo:         repo,
		Groups:       groups,
		AuditService: auditService,
		now:          time.Now,
	}
}

func (s *TemplateServiceImpl) List(ctx context.Context, grant *access.Grant) ([]Template, error) {
	templates, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch standalone inner groups", err)
	}
	if grant.IsSuperAdmin() {
		return templates, nil
	}
	own := make([]Template, 0, len(templates))
	for _, t := range templates {
		if t.CreatedBy == grant.UID {
			own = append(own, t)
		}
	}
	return own, nil
}

func (s *TemplateServiceImpl) Create(ctx context.Context, req TemplateRequest, createdBy string) (*Template, error) {
	if err := group.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	now := s.now()
	t := &Template{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		StartTime:   group.NormalizeClock(req.StartTime),
		EndTime:     group.NormalizeClock(req.EndTime),
		Members:     dedupe(req.Members),
		CreatedBy:   createdBy,
		CreatedAt:   &now,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to create standalone inner group", err)
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, "inner_groups", t.ID, map[string]models.Change{
		"name":   {New: t.Name},
		"window": {New: t.StartTime + "-" + t.EndTime},
	})
	return t, nil
}

func (s *TemplateServiceImpl) Update(ctx context.Context, grant *access.Grant, id string, req TemplateRequest) error {
	if err := group.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return err
	}
	current, err := s.owned(ctx, grant, id)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": strings.TrimSpace(req.Description),
		"startTime":   group.NormalizeClock(req.StartTime),
		"endTime":     group.NormalizeClock(req.EndTime),
		"members":     dedupe(req.Members),
		"updatedAt":   s.now(),
		"updatedBy":   grant.UID,
	}
	if err := s.Repo.Update(ctx, id, updates); err != nil {
		return storeError(err, "Failed to update standalone inner group")
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, "inner_groups", id, map[string]models.Change{
		"name":   {Old: current.Name, New: updates["name"]},
		"window": {Old: current.StartTime + "-" + current.EndTime, New: updates["startTime"].(string) + "-" + updates["endTime"].(string)},
	})
	return nil
}

func (s *TemplateServiceImpl) Delete(ctx context.Context, grant *access.Grant, id string) error {
	current, err := s.owned(ctx, grant, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Unavailable, "Failed to delete standalone inner group", err)
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, "inner_groups", id, map[string]models.Change{
		"name": {Old: current.Name},
	})
	return nil
}

// Apply copies the template into each target group. Per-group failures are
// collected and do not stop the remaining copies.
func (s *TemplateServiceImpl) Apply(ctx context.Context, grant *access.Grant, id string, req ApplyRequest) (*ApplyResult, error) {
	tmpl, err := s.owned(ctx, grant, id)
	if err != nil {
		return nil, err
	}

	targets := dedupe(req.GroupIDs)
	if req.All {
		groups, err := s.Groups.ListGroups(ctx, grant)
		if err != nil {
			return nil, err
		}
		targets = targets[:0]
		for _, g := range groups {
			targets = append(targets, g.ID)
		}
	}
	if len(targets) == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "groupIds must contain at least one group, or set all")
	}

	result := &ApplyResult{Added: []string{}, Skipped: []string{}, Failed: []ApplyFailure{}}
	for _, groupID := range targets {
		added, err := s.Groups.ApplyTemplate(ctx, groupID, tmpl.innerGroup())
		switch {
		case err != nil:
			result.Failed = append(result.Failed, ApplyFailure{GroupID: groupID, Error: apperr.Message(err)})
		case added:
			result.Added = append(result.Added, groupID)
		default:
			result.Skipped = append(result.Skipped, groupID)
		}
	}

	if len(result.Added) > 0 {
		_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, "inner_groups", id, map[string]models.Change{
			"appliedTo": {New: result.Added},
		})
	}
	return result, nil
}

func (s *TemplateServiceImpl) owned(ctx context.Context, grant *access.Grant, id string) (*Template, error) {
	t, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch standalone inner group", err)
	}
	if t == nil {
		return nil, apperr.New(apperr.NotFound, "Inner group not found")
	}
	if !grant.IsSuperAdmin() && t.CreatedBy != grant.UID {
		return nil, apperr.New(apperr.PermissionDenied, "You can only manage inner groups you created")
	}
	return t, nil
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
