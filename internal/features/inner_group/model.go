package inner_group

import (
	"time"

	"amigo-admin/internal/database"
	"amigo-admin/internal/features/group"
)

// Template is a standalone inner group that can be copied into groups
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Members     []string   `json:"members"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
}

func decodeTemplate(id string, data database.Fields) Template {
	return Template{
		ID:          id,
		Name:        data.String("name"),
		Description: data.String("description"),
		StartTime:   data.String("startTime"),
		EndTime:     data.String("endTime"),
		Members:     data.Strings("members"),
		CreatedBy:   data.StringOr("createdBy", "unknown"),
		CreatedAt:   data.Time("createdAt"),
		UpdatedAt:   data.Time("updatedAt"),
		UpdatedBy:   data.String("updatedBy"),
	}
}

func (t Template) innerGroup() group.InnerGroup {
	return group.InnerGroup{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Members:     t.Members,
	}
}

type TemplateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime" validate:"required,hhmm"`
	EndTime     string   `json:"endTime" validate:"required,hhmm"`
	Members     []string `json:"members"`
}

type ApplyRequest struct {
	GroupIDs []string `json:"groupIds"`
	All      bool     `json:"all"`
}

type ApplyFailure struct {
	GroupID string `json:"groupId"`
	Error   string `json:"error"`
}

type ApplyResult struct {
	Added   []string       `json:"added"`
	Skipped []string       `json:"skipped"`
	Failed  []ApplyFailure `json:"failed"`
}
