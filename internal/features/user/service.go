package user

import (
	"context"
	"strings"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/export"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/audit"
)

type UserService interface {
	ListUsers(ctx context.Context, search string) ([]User, error)
	GetUser(ctx context.Context, uid string) (*User, error)
	UpdateRole(ctx context.Context, uid, role, updatedBy string) error
	UpdateCallAccess(ctx context.Context, uid string, callAccess bool, updatedBy string) error
	ExportUsers(ctx context.Context) ([]byte, string, error)
}

type UserServiceImpl struct {
	UserRepo     UserRepository
	AuditService audit.AuditService
	now          func() time.Time
}

func NewUserService(userRepo UserRepository, auditService audit.AuditService) UserService {
	return &UserServiceImpl{
		UserRepo:     userRepo,
		AuditService: auditService,
		now:          time.Now,
	}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, search string) ([]User, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch users", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return users, nil
	}
	filtered := make([]User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.DisplayName), search) || strings.Contains(strings.ToLower(u.Email), search) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, uid string) (*User, error) {
	u, err := s.UserRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch user", err)
	}
	if u == nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return u, nil
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, uid, role, updatedBy string) error {
	current, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.UserRepo.Update(ctx, uid, map[string]interface{}{
		"role":      role,
		"updatedAt": s.now(),
		"updatedBy": updatedBy,
	}); err != nil {
		return storeError(err, "Failed to update user role")
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, "users", uid, map[string]models.Change{
		"role": {Old: current.Role, New: role},
	})
	return nil
}

func (s *UserServiceImpl) UpdateCallAccess(ctx context.Context, uid string, callAccess bool, updatedBy string) error {
	current, err := s.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.UserRepo.Update(ctx, uid, map[string]interface{}{
		"callAccess": callAccess,
		"updatedAt":  s.now(),
		"updatedBy":  updatedBy,
	}); err != nil {
		return storeError(err, "Failed to update call access")
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionUpdate, "users", uid, map[string]models.Change{
		"callAccess": {Old: current.CallAccess, New: callAccess},
	})
	return nil
}

var exportColumns = []export.Column{
	{Key: "uid", Header: "UID", Width: 32},
	{Key: "displayName", Header: "Name"},
	{Key: "email", Header: "Email", Width: 28},
	{Key: "phoneNumber", Header: "Phone"},
	{Key: "role", Header: "Role"},
	{Key: "callAccess", Header: "Call Access"},
	{Key: "isOnline", Header: "Online"},
	{Key: "lastSeen", Header: "Last Seen"},
	{Key: "city", Header: "City"},
	{Key: "country", Header: "Country"},
	{Key: "createdAt", Header: "Created"},
}

func (s *UserServiceImpl) ExportUsers(ctx context.Context) ([]byte, string, error) {
	users, err := s.ListUsers(ctx, "")
	if err != nil {
		return nil, "", err
	}

	rows := make([]map[string]any, 0, len(users))
	for _, u := range users {
		row := map[string]any{
			"uid":         u.UID,
			"displayName": u.DisplayName,
			"email":       u.Email,
			"phoneNumber": u.PhoneNumber,
			"role":        u.Role,
			"callAccess":  u.CallAccess,
			"isOnline":    u.IsOnline,
			"lastSeen":    u.LastSeen,
			"createdAt":   u.CreatedAt,
		}
		if u.CurrentLocation != nil {
			row["city"] = u.CurrentLocation.City
			row["country"] = u.CurrentLocation.Country
		}
		rows = append(rows, row)
	}

	data, filename, err := export.ToExcel("Users", exportColumns, rows, s.now())
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to build export", err)
	}
	return data, filename, nil
}

func storeError(err error, message string) error {
	if apperr.KindOf(err) != apperr.Internal {
		return err
	}
	return apperr.Wrap(apperr.Unavailable, message, err)
}
