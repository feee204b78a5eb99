package access

import (
	"context"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/config"
)

// AdminRecord is the stored authorization state of one admin
type AdminRecord struct {
	Role        string
	Permissions []string
	IsActive    bool
}

// AdminLookup returns (nil, nil) when the subject has no admin record
type AdminLookup interface {
	LookupAdmin(ctx context.Context, uid string) (*AdminRecord, error)
}

// Grant is the resolved capability set of a caller
type Grant struct {
	UID         string
	Role        string
	Permissions map[Permission]bool
	Bootstrap   bool
	Active      bool
}

func (g *Grant) Has(p Permission) bool {
	return g != nil && g.Permissions[p]
}

// IsSuperAdmin sees and manages every group regardless of ownership
func (g *Grant) IsSuperAdmin() bool {
	return g != nil && (g.Bootstrap || g.Role == RoleAdmin)
}

// List returns the held permissions in tab order
func (g *Grant) List() []Permission {
	out := make([]Permission, 0, len(g.Permissions))
	for _, p := range AllPermissions {
		if g.Permissions[p] {
			out = append(out, p)
		}
	}
	return out
}

func (g *Grant) Tabs() []string {
	tabs := make([]string, 0, len(g.Permissions))
	for _, p := range g.List() {
		tabs = append(tabs, permissionTabs[p])
	}
	return tabs
}

type Resolver interface {
	Resolve(ctx context.Context, uid string) (*Grant, error)
	IsBootstrap(uid string) bool
}

type ResolverImpl struct {
	bootstrap map[string]bool
	admins    AdminLookup
}

func NewResolver(cfg *config.Config, admins AdminLookup) Resolver {
	return newResolver(cfg.BootstrapAdminUIDs, admins)
}

func newResolver(bootstrapUIDs []string, admins AdminLookup) *ResolverImpl {
	set := make(map[string]bool, len(bootstrapUIDs))
	for _, uid := range bootstrapUIDs {
		set[uid] = true
	}
	return &ResolverImpl{bootstrap: set, admins: admins}
}

func (r *ResolverImpl) IsBootstrap(uid string) bool {
	return r.bootstrap[uid]
}

// Resolve merges the static allow-list with the stored admin record.
// Allow-listed subjects always get the full set; everyone else needs an
// active admin record.
func (r *ResolverImpl) Resolve(ctx context.Context, uid string) (*Grant, error) {
	if uid == "" {
		return nil, apperr.New(apperr.Unauthenticated, "Authentication required")
	}
	if r.bootstrap[uid] {
		return &Grant{
			UID:         uid,
			Role:        RoleAdmin,
			Permissions: fullSet(),
			Bootstrap:   true,
			Active:      true,
		}, nil
	}

	rec, err := r.admins.LookupAdmin(ctx, uid)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to verify admin access", err)
	}
	if rec == nil {
		return nil, apperr.New(apperr.PermissionDenied, "Access denied. Admin privileges required.")
	}
	if !rec.IsActive {
		return nil, apperr.New(apperr.PermissionDenied, "Admin account is deactivated")
	}

	grant := &Grant{
		UID:         uid,
		Role:        rec.Role,
		Permissions: make(map[Permission]bool),
		Active:      true,
	}
	if rec.Role == RoleAdmin {
		grant.Permissions = fullSet()
		return grant, nil
	}
	for _, p := range rec.Permissions {
		if ValidPermission(p) {
			grant.Permissions[Permission(p)] = true
		}
	}
	return grant, nil
}

func fullSet() map[Permission]bool {
	set := make(map[Permission]bool, len(AllPermissions))
	for _, p := range AllPermissions {
		set[p] = true
	}
	return set
}
