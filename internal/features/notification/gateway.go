package notification

import (
	"context"

	"amigo-admin/internal/database"

	"firebase.google.com/go/v4/messaging"
)

// PushMessage is one device-addressed notification
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// PushGateway delivers to a single device token and returns the provider message id
type PushGateway interface {
	Send(ctx context.Context, msg PushMessage) (string, error)
}

type FCMGateway struct {
	client *messaging.Client
}

func NewFCMGateway(fb *database.Firebase) PushGateway {
	return &FCMGateway{client: fb.Messaging}
}

func (g *FCMGateway) Send(ctx context.Context, msg PushMessage) (string, error) {
	return g.client.Send(ctx, buildMessage(msg))
}

func buildMessage(msg PushMessage) *messaging.Message {
	badge := 1
	return &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "chat-messages",
				Priority:     messaging.PriorityHigh,
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:            "default",
					Badge:            &badge,
					ContentAvailable: true,
				},
			},
		},
	}
}
