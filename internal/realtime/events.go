package realtime

import "time"

type EventType string

const (
	EventConnected              EventType = "connected"
	EventNotificationSent       EventType = "notification_sent"
	EventNotificationDispatched EventType = "notification_dispatched"
	EventNotificationFailed     EventType = "notification_failed"
)

// Event is the envelope written to every feed subscriber
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
