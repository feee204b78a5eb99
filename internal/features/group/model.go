package group

import (
	"fmt"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/database"
	"amigo-admin/internal/validator"
)

// InnerGroup is a time-boxed sub-group embedded in its parent group document
type InnerGroup struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Members     []string   `json:"members"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type Group struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Members     []string     `json:"members"`
	InnerGroups []InnerGroup `json:"innerGroups"`
	IsActive    bool         `json:"isActive"`
	CreatedBy   string       `json:"createdBy"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

func decodeGroup(id string, data database.Fields) Group {
	g := Group{
		ID:          id,
		Name:        data.String("name"),
		Description: data.String("description"),
		Members:     data.Strings("members"),
		InnerGroups: []InnerGroup{},
		IsActive:    !data.Has("isActive") || data.Bool("isActive"),
		CreatedBy:   data.String("createdBy"),
		CreatedAt:   data.Time("createdAt"),
		UpdatedAt:   data.Time("updatedAt"),
	}
	for _, ig := range data.Maps("innerGroups") {
		g.InnerGroups = append(g.InnerGroups, DecodeInnerGroup(ig.String("id"), ig))
	}
	return g
}

func DecodeInnerGroup(id string, data database.Fields) InnerGroup {
	return InnerGroup{
		ID:          id,
		Name:        data.String("name"),
		Description: data.String("description"),
		StartTime:   data.String("startTime"),
		EndTime:     data.String("endTime"),
		Members:     data.Strings("members"),
		CreatedAt:   data.Time("createdAt"),
	}
}

// Fields is the embedded document form
func (ig InnerGroup) Fields() map[string]interface{} {
	members := ig.Members
	if members == nil {
		members = []string{}
	}
	m := map[string]interface{}{
		"id":          ig.ID,
		"name":        ig.Name,
		"description": ig.Description,
		"startTime":   ig.StartTime,
		"endTime":     ig.EndTime,
		"members":     members,
	}
	if ig.CreatedAt != nil {
		m["createdAt"] = *ig.CreatedAt
	}
	return m
}

// SameSlot reports whether two inner groups share name and time window
func (ig InnerGroup) SameSlot(other InnerGroup) bool {
	return ig.Name == other.Name &&
		NormalizeClock(ig.StartTime) == NormalizeClock(other.StartTime) &&
		NormalizeClock(ig.EndTime) == NormalizeClock(other.EndTime)
}

func (g *Group) HasSlot(ig InnerGroup) bool {
	for _, existing := range g.InnerGroups {
		if existing.SameSlot(ig) {
			return true
		}
	}
	return false
}

func innerGroupFields(groups []InnerGroup) []interface{} {
	out := make([]interface{}, 0, len(groups))
	for _, ig := range groups {
		out = append(out, ig.Fields())
	}
	return out
}

// withoutMember drops uid from every inner group's member list
func withoutMember(groups []InnerGroup, uid string) []InnerGroup {
	out := make([]InnerGroup, 0, len(groups))
	for _, ig := range groups {
		members := make([]string, 0, len(ig.Members))
		for _, m := range ig.Members {
			if m != uid {
				members = append(members, m)
			}
		}
		ig.Members = members
		out = append(out, ig)
	}
	return out
}

// NormalizeClock zero-pads the hour so times compare lexicographically
func NormalizeClock(s string) string {
	if len(s) == 4 && s[1] == ':' {
		return "0" + s
	}
	return s
}

// ValidateWindow checks HH:MM format and start < end
func ValidateWindow(start, end string) error {
	if !validator.HHMM.MatchString(start) || !validator.HHMM.MatchString(end) {
		return apperr.New(apperr.InvalidArgument, "Times must use HH:MM format")
	}
	if NormalizeClock(start) >= NormalizeClock(end) {
		return apperr.New(apperr.InvalidArgument, fmt.Sprintf("startTime %s must be before endTime %s", start, end))
	}
	return nil
}

type CreateGroupRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Members     []string `json:"members"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type InnerGroupRequest struct {
	// ID keeps an existing inner group's identity on replace
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime" validate:"required,hhmm"`
	EndTime     string   `json:"endTime" validate:"required,hhmm"`
	Members     []string `json:"members"`
}

type ReplaceInnerGroupsRequest struct {
	InnerGroups []InnerGroupRequest `json:"innerGroups" validate:"dive"`
}
