package events

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

const SubjectNotificationPush = "notification.push"

type PushPublisher interface {
	PublishNotificationPush(userID int64, title, body string, data map[string]string) error
}

// NotificationPushEvent is consumed by the push worker, which resolves the
// user's device tokens and talks to the provider.
type NotificationPushEvent struct {
	EventType string            `json:"event_type"`
	UserID    int64             `json:"user_id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) PublishNotificationPush(userID int64, title, body string, data map[string]string) error {
	event := NotificationPushEvent{
		EventType: SubjectNotificationPush,
		UserID:    userID,
		Title:     title,
		Body:      body,
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(SubjectNotificationPush, eventJSON); err != nil {
		slog.Error("failed to publish push event", "subject", SubjectNotificationPush, "user_id", userID, "error", err)
		return err
	}

	slog.Info("published push event", "subject", SubjectNotificationPush, "user_id", userID)
	return nil
}
