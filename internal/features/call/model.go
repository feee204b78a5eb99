package call

import (
	"math"
	"strconv"
	"strings"
	"time"

	"amigo-admin/internal/common/apperr"
)

// TokenRequest carries uid as decoded JSON: a string account or a number
type TokenRequest struct {
	ChannelName string      `json:"channelName" validate:"required,min=3"`
	UID         interface{} `json:"uid"`
	Role        string      `json:"role" validate:"omitempty,oneof=publisher subscriber"`
}

type TokenResponse struct {
	Token       string      `json:"token"`
	AppID       string      `json:"appId"`
	ChannelName string      `json:"channelName"`
	UID         interface{} `json:"uid"`
	Role        string      `json:"role"`
	Expiration  int64       `json:"expiration"`
	ExpiresIn   int64       `json:"expiresIn"`
	GeneratedAt int64       `json:"generatedAt"`
}

type ConfigStatus struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Config    struct {
		AppIDConfigured          bool `json:"appIdConfigured"`
		AppCertificateConfigured bool `json:"appCertificateConfigured"`
	} `json:"config"`
}

// subject is either a string account or a numeric uid
type subject struct {
	account string
	uid     uint32
	numeric bool
}

func parseSubject(raw interface{}) (subject, error) {
	switch v := raw.(type) {
	case string:
		if v = strings.TrimSpace(v); v == "" {
			break
		}
		return subject{account: v}, nil
	case float64:
		if v < 0 || v > math.MaxUint32 || v != math.Trunc(v) {
			return subject{}, apperr.New(apperr.InvalidArgument, "Invalid UID format")
		}
		return subject{uid: uint32(v), numeric: true}, nil
	case nil:
	default:
		return subject{}, apperr.New(apperr.InvalidArgument, "Invalid UID format")
	}
	return subject{}, apperr.New(apperr.InvalidArgument, "Missing required fields: channelName and uid are required")
}

func (s subject) String() string {
	if s.numeric {
		return strconv.FormatUint(uint64(s.uid), 10)
	}
	return s.account
}
