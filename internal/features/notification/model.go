package notification

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/database"
)

type Status string

const (
	StatusSuccess     Status = "success"
	StatusError       Status = "error"
	StatusBulkSuccess Status = "bulk_success"
	StatusBulkError   Status = "bulk_error"
)

func (s Status) bulk() bool {
	return s == StatusBulkSuccess || s == StatusBulkError
}

// tokens longer than this are treated as push tokens by the legacy heuristic
const tokenLengthThreshold = 100

type Payload struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type BulkRequest struct {
	UserIDs       []string               `json:"userIds" validate:"required,min=1"`
	Notification  Payload                `json:"notification"`
	Data          map[string]interface{} `json:"data"`
	ExcludeUserID string                 `json:"excludeUserId"`
}

type SendRequest struct {
	To           string                 `json:"to" validate:"required"`
	ToType       string                 `json:"toType" validate:"omitempty,oneof=userId token"`
	Notification Payload                `json:"notification"`
	Data         map[string]interface{} `json:"data"`
}

type TargetKind int

const (
	TargetUser TargetKind = iota + 1
	TargetToken
)

// Target is the addressee of a single send
type Target struct {
	Kind  TargetKind
	Value string
}

// ClassifyTarget honors an explicit type, falling back to the length
// heuristic older clients rely on
func ClassifyTarget(to, toType string) (Target, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return Target{}, apperr.New(apperr.InvalidArgument, "to is required")
	}
	switch toType {
	case "userId":
		return Target{Kind: TargetUser, Value: to}, nil
	case "token":
		return Target{Kind: TargetToken, Value: to}, nil
	case "":
		if len(to) < tokenLengthThreshold {
			return Target{Kind: TargetUser, Value: to}, nil
		}
		return Target{Kind: TargetToken, Value: to}, nil
	default:
		return Target{}, apperr.New(apperr.InvalidArgument, "toType must be userId or token")
	}
}

// Result is the outcome of one recipient's send
type Result struct {
	RecipientID string `json:"recipientId"`
	UserID      string `json:"userId"`
	Success     bool   `json:"success"`
	MessageID   string `json:"messageId,omitempty"`
	Error       string `json:"error,omitempty"`
}

func (r Result) fields() map[string]interface{} {
	m := map[string]interface{}{
		"recipientId": r.RecipientID,
		"userId":      r.UserID,
		"success":     r.Success,
	}
	if r.MessageID != "" {
		m["messageId"] = r.MessageID
	}
	if r.Error != "" {
		m["error"] = r.Error
	}
	return m
}

// BulkOutcome is returned to the caller of a bulk dispatch
type BulkOutcome struct {
	Message         string   `json:"message,omitempty"`
	TotalUsers      int      `json:"totalUsers"`
	SuccessfulSends int      `json:"successfulSends"`
	FailedSends     int      `json:"failedSends"`
	Results         []Result `json:"results"`
	SentCount       int      `json:"sentCount"`
}

// LogEntry is one append-only record in notificationLogs
type LogEntry struct {
	ID              string            `json:"id"`
	SentBy          string            `json:"sentBy"`
	SentTo          []string          `json:"sentTo"`
	Notification    Payload           `json:"notification"`
	Data            map[string]string `json:"data"`
	TotalUsers      int               `json:"totalUsers,omitempty"`
	SuccessfulSends int               `json:"successfulSends,omitempty"`
	FailedSends     int               `json:"failedSends,omitempty"`
	Results         []Result          `json:"results,omitempty"`
	MessageID       string            `json:"messageId,omitempty"`
	UserRole        string            `json:"userRole,omitempty"`
	FCMTokenLength  int               `json:"fcmTokenLength,omitempty"`
	Error           string            `json:"error,omitempty"`
	Status          Status            `json:"status"`
	Timestamp       time.Time         `json:"timestamp"`
}

// fields is the stored form. Single sends keep sentTo as a plain id.
func (e LogEntry) fields() map[string]interface{} {
	data := e.Data
	if data == nil {
		data = map[string]string{}
	}
	m := map[string]interface{}{
		"sentBy": e.SentBy,
		"notification": map[string]interface{}{
			"title": e.Notification.Title,
			"body":  e.Notification.Body,
		},
		"data":      data,
		"status":    string(e.Status),
		"timestamp": e.Timestamp,
	}

	if e.Status.bulk() {
		sentTo := e.SentTo
		if sentTo == nil {
			sentTo = []string{}
		}
		m["sentTo"] = sentTo
		m["totalUsers"] = e.TotalUsers
		m["successfulSends"] = e.SuccessfulSends
		m["failedSends"] = e.FailedSends
		results := make([]interface{}, 0, len(e.Results))
		for _, r := range e.Results {
			results = append(results, r.fields())
		}
		m["results"] = results
	} else {
		to := "unknown"
		if len(e.SentTo) > 0 {
			to = e.SentTo[0]
		}
		m["sentTo"] = to
	}

	if e.MessageID != "" {
		m["messageId"] = e.MessageID
	}
	if e.UserRole != "" {
		m["userRole"] = e.UserRole
	}
	if e.FCMTokenLength > 0 {
		m["fcmTokenLength"] = e.FCMTokenLength
	}
	if e.Error != "" {
		m["error"] = e.Error
	}
	return m
}

func decodeLogEntry(id string, d database.Fields) LogEntry {
	e := LogEntry{
		ID:              id,
		SentBy:          d.String("sentBy"),
		Data:            map[string]string{},
		TotalUsers:      intField(d, "totalUsers"),
		SuccessfulSends: intField(d, "successfulSends"),
		FailedSends:     intField(d, "failedSends"),
		MessageID:       d.String("messageId"),
		UserRole:        d.String("userRole"),
		FCMTokenLength:  intField(d, "fcmTokenLength"),
		Error:           d.String("error"),
		Status:          Status(d.String("status")),
	}
	if to, ok := d["sentTo"].(string); ok {
		e.SentTo = []string{to}
	} else {
		e.SentTo = d.Strings("sentTo")
	}
	if n := d.Map("notification"); n != nil {
		e.Notification = Payload{Title: n.String("title"), Body: n.String("body")}
	}
	for k, v := range d.Map("data") {
		e.Data[k] = stringify(v)
	}
	for _, r := range d.Maps("results") {
		e.Results = append(e.Results, Result{
			RecipientID: r.StringOr("recipientId", r.String("userId")),
			UserID:      r.String("userId"),
			Success:     r.Bool("success"),
			MessageID:   r.String("messageId"),
			Error:       r.String("error"),
		})
	}
	if ts := d.Time("timestamp"); ts != nil {
		e.Timestamp = *ts
	}
	return e
}

func intField(d database.Fields, key string) int {
	v, _ := d.Float(key)
	return int(v)
}

// stringify flattens passthrough values into push data strings
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func stringifyData(data map[string]interface{}) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = stringify(v)
	}
	return out
}

type LogQuery struct {
	Limit  int
	Status string
	SentBy string
}

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

func (q LogQuery) normalized() LogQuery {
	switch {
	case q.Limit <= 0:
		q.Limit = defaultLogLimit
	case q.Limit > maxLogLimit:
		q.Limit = maxLogLimit
	}
	return q
}
