package admin

import (
	"time"

	"amigo-admin/internal/database"
)

type Admin struct {
	UID         string     `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
}

func decodeAdmin(id string, data database.Fields) Admin {
	return Admin{
		UID:         id,
		Email:       data.String("email"),
		Role:        data.String("role"),
		Permissions: data.Strings("permissions"),
		IsActive:    data.Bool("isActive"),
		CreatedAt:   data.Time("createdAt"),
		CreatedBy:   data.String("createdBy"),
		UpdatedAt:   data.Time("updatedAt"),
		UpdatedBy:   data.String("updatedBy"),
	}
}

type CreateAdminRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        string   `json:"role" validate:"required,admin_role"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,permission"`
}

type UpdateAdminRequest struct {
	Role        string   `json:"role" validate:"required,admin_role"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,permission"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive"`
}
