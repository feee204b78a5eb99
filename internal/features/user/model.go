package user

import (
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/database"
)

type Location struct {
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	IPAddress string     `json:"ipAddress,omitempty"`
	Country   string     `json:"country,omitempty"`
	State     string     `json:"state,omitempty"`
	City      string     `json:"city,omitempty"`
	Address   string     `json:"address,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// User is an app account as the panel sees it. The push token never leaves the server.
type User struct {
	UID                string     `json:"uid"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"displayName"`
	PhoneNumber        string     `json:"phoneNumber"`
	Role               string     `json:"role"`
	CallAccess         bool       `json:"callAccess"`
	FCMToken           string     `json:"-"`
	HasFCMToken        bool       `json:"hasFcmToken"`
	IsOnline           bool       `json:"isOnline"`
	LastSeen           *time.Time `json:"lastSeen,omitempty"`
	CreatedAt          *time.Time `json:"createdAt,omitempty"`
	ProfileImageURL    string     `json:"profileImageUrl,omitempty"`
	CurrentLocation    *Location  `json:"currentLocation,omitempty"`
	LastLocationUpdate *time.Time `json:"lastLocationUpdate,omitempty"`
}

func decodeUser(id string, data database.Fields) User {
	u := User{
		UID:                id,
		Email:              data.String("email"),
		DisplayName:        data.StringOr("displayName", "Anonymous"),
		PhoneNumber:        data.StringOr("phoneNumber", "N/A"),
		Role:               data.StringOr("role", access.RoleUser),
		CallAccess:         data.Bool("callAccess"),
		FCMToken:           data.String("fcmToken"),
		IsOnline:           data.Bool("isOnline"),
		LastSeen:           data.Time("lastSeen"),
		CreatedAt:          data.Time("createdAt"),
		ProfileImageURL:    data.String("profileImageUrl"),
		LastLocationUpdate: data.Time("lastLocationUpdate"),
	}
	u.HasFCMToken = u.FCMToken != ""

	if loc := data.Map("currentLocation"); loc != nil {
		l := &Location{
			IPAddress: loc.String("ipAddress"),
			Country:   loc.String("country"),
			State:     loc.String("state"),
			City:      loc.String("city"),
			Address:   loc.String("address"),
			Timestamp: loc.Time("timestamp"),
		}
		if lat, ok := loc.Float("latitude"); ok {
			l.Latitude = &lat
		}
		if lng, ok := loc.Float("longitude"); ok {
			l.Longitude = &lng
		}
		u.CurrentLocation = l
	}
	return u
}

// Name is the label used wherever a user is shown next to content
func (u *User) Name() string {
	if u.DisplayName != "" && u.DisplayName != "Anonymous" {
		return u.DisplayName
	}
	if u.Email != "" {
		return u.Email
	}
	return u.DisplayName
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,user_role"`
}

type UpdateCallAccessRequest struct {
	CallAccess *bool `json:"callAccess" validate:"required"`
}
