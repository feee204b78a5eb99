package admin

import (
	"context"
	"strings"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/audit"

	"go.uber.org/zap"
)

type AdminService interface {
	ListAdmins(ctx context.Context) ([]Admin, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest, createdBy string) (*Admin, error)
	UpdateAdmin(ctx context.Context, uid string, req UpdateAdminRequest, updatedBy string) error
	DeleteAdmin(ctx context.Context, uid, callerUID string) error
	SetStatus(ctx context.Context, uid string, active bool, callerUID string) error
	GetAdmin(ctx context.Context, uid string) (*Admin, error)
}

type AdminServiceImpl struct {
	repo         AdminRepository
	accounts     AccountProvisioner
	auditService audit.AuditService
	log          *zap.Logger
	now          func() time.Time
}

func NewAdminService(repo AdminRepository, accounts AccountProvisioner, auditService audit.AuditService, log *zap.Logger) AdminService {
	return &AdminServiceImpl{
		repo:         repo,
		accounts:     accounts,
		auditService: auditService,
		log:          log,
		now:          time.Now,
	}
}

func (s *AdminServiceImpl) ListAdmins(ctx context.Context) ([]Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch admins", err)
	}
	return admins, nil
}

func (s *AdminServiceImpl) GetAdmin(ctx context.Context, uid string) (*Admin, error) {
	a, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch admin", err)
	}
	return a, nil
}

func (s *AdminServiceImpl) CreateAdmin(ctx context.Context, req CreateAdminRequest, createdBy string) (*Admin, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to check existing admins", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.InvalidArgument, "Admin with this email already exists")
	}

	uid, err := s.accounts.CreateAccount(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &Admin{
		UID:         uid,
		Email:       email,
		Role:        req.Role,
		Permissions: dedupe(req.Permissions),
		IsActive:    true,
		CreatedAt:   &now,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		// Leave no orphaned sign-in account behind
		if derr := s.accounts.DeleteAccount(ctx, uid); derr != nil {
			s.log.Error("failed to roll back auth account", zap.String("uid", uid), zap.Error(derr))
		}
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to create admin", err)
	}

	_ = s.auditService.LogChange(ctx, models.AuditActionCreate, "admins", uid, map[string]models.Change{
		"email":       {New: a.Email},
		"role":        {New: a.Role},
		"permissions": {New: a.Permissions},
	})
	return a, nil
}

func (s *AdminServiceImpl) UpdateAdmin(ctx context.Context, uid string, req UpdateAdminRequest, updatedBy string) error {
	current, err := s.mustFind(ctx, uid)
	if err != nil {
		return err
	}

	perms := dedupe(req.Permissions)
	if err := s.repo.Update(ctx, uid, map[string]interface{}{
		"role":        req.Role,
		"permissions": perms,
		"updatedAt":   s.now(),
		"updatedBy":   updatedBy,
	}); err != nil {
		return storeError(err, "Failed to update admin")
	}

	_ = s.auditService.LogChange(ctx, models.AuditActionUpdate, "admins", uid, map[string]models.Change{
		"role":        {Old: current.Role, New: req.Role},
		"permissions": {Old: current.Permissions, New: perms},
	})
	return nil
}

func (s *AdminServiceImpl) DeleteAdmin(ctx context.Context, uid, callerUID string) error {
	if uid == callerUID {
		return apperr.New(apperr.InvalidArgument, "Cannot delete your own admin account")
	}
	current, err := s.mustFind(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.accounts.DeleteAccount(ctx, uid); err != nil {
		s.log.Warn("could not delete auth account", zap.String("uid", uid), zap.Error(err))
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return apperr.Wrap(apperr.Unavailable, "Failed to delete admin", err)
	}

	_ = s.auditService.LogChange(ctx, models.AuditActionDelete, "admins", uid, map[string]models.Change{
		"admin": {Old: current, New: "DELETED"},
	})
	return nil
}

func (s *AdminServiceImpl) SetStatus(ctx context.Context, uid string, active bool, callerUID string) error {
	if uid == callerUID && !active {
		return apperr.New(apperr.InvalidArgument, "Cannot deactivate your own admin account")
	}
	current, err := s.mustFind(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, uid, map[string]interface{}{
		"isActive":  active,
		"updatedAt": s.now(),
		"updatedBy": callerUID,
	}); err != nil {
		return storeError(err, "Failed to update admin status")
	}

	if err := s.accounts.SetDisabled(ctx, uid, !active); err != nil {
		s.log.Warn("could not update auth account status", zap.String("uid", uid), zap.Bool("active", active), zap.Error(err))
	}

	_ = s.auditService.LogChange(ctx, models.AuditActionStatus, "admins", uid, map[string]models.Change{
		"isActive": {Old: current.IsActive, New: active},
	})
	return nil
}

func (s *AdminServiceImpl) mustFind(ctx context.Context, uid string) (*Admin, error) {
	a, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch admin", err)
	}
	if a == nil {
		return nil, apperr.New(apperr.NotFound, "Admin not found")
	}
	return a, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func storeError(err error, message string) error {
	if apperr.KindOf(err) != apperr.Internal {
		return err
	}
	return apperr.Wrap(apperr.Unavailable, message, err)
}
