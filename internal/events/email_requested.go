package events

import "time"

const EmailRequestedTopic = "guard.notification.email.v1"

// EmailRequestedEvent asks the notification worker to send a templated email.
// Delivery is fire-and-forget; the import never waits on it.
type EmailRequestedEvent struct {
	EventType  string            `json:"event_type"`
	RequestID  string            `json:"request_id"`
	To         string            `json:"to"`
	Template   string            `json:"template"`
	Params     map[string]string `json:"params"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Known templates.
const (
	TemplateLoginCredentials = "login_credentials"
)
