package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionStatus       AuditAction = "STATUS"
	AuditActionArchive      AuditAction = "ARCHIVE"
	AuditActionMembership   AuditAction = "MEMBERSHIP"
	AuditActionNotification AuditAction = "NOTIFICATION"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action     AuditAction        `bson:"action" json:"action"`
	Module     string             `bson:"module" json:"module"`       // admins, users, groups, chats...
	RecordID   string             `bson:"record_id" json:"record_id"` // Firestore document id
	ActorID    string             `bson:"actor_id" json:"actor_id"`
	ActorEmail string             `bson:"actor_email,omitempty" json:"actor_email,omitempty"`
	ActorName  string             `bson:"-" json:"actor_name,omitempty"`
	Changes    map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

type Log struct {
	AppId        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	IpAddress    string    `bson:"ip_address" json:"ip_address"`
	UserId       string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	Fields       any       `bson:"fields,omitempty" json:"fields,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}

// Paginated wraps list responses that support paging
type Paginated[T any] struct {
	Items []T   `json:"items"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}
