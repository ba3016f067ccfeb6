package events

import "time"

const (
	NotificationRequestedTopic = "grafik.notification.requested.v1"
	NotificationRequestedType  = "notification_requested"
)

// NotificationRequestedEvent asks the mail consumer to deliver one message to
// every recipient.
type NotificationRequestedEvent struct {
	EventType   string    `json:"event_type"`
	Group       string    `json:"group"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Recipients  []string  `json:"recipients"`
	RequestedBy string    `json:"requested_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
