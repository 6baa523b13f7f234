package domain

type NotificationEventType string

const (
	EventNegotiationSubmitted NotificationEventType = "NEGOTIATION_SUBMITTED"
	EventOfferReceived        NotificationEventType = "OFFER_RECEIVED"
	EventNegotiationResolved  NotificationEventType = "NEGOTIATION_RESOLVED"
	EventNegotiationCountered NotificationEventType = "NEGOTIATION_COUNTERED"
)

// NotificationEvent carries ids and human-readable text for the notification
// subsystem. Delivery and formatting are entirely its concern.
type NotificationEvent struct {
	Type          NotificationEventType `json:"type"`
	NegotiationID string                `json:"negotiation_id"`
	OfferID       string                `json:"offer_id,omitempty"`
	RecipientID   string                `json:"recipient_id"`
	ActorID       string                `json:"actor_id,omitempty"`
	Text          string                `json:"text"`
}

type NotificationPublisher interface {
	PublishNotification(event NotificationEvent) error
}
