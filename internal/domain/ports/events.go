package ports

import (
	"context"
	"time"
)

// EventType identifica um evento administrativo
type EventType string

const (
	EventUserCreated        EventType = "user.created"
	EventRootCreated        EventType = "root.created"
	EventRootTransferred    EventType = "root.transferred"
	EventArticleStatus      EventType = "article.status_changed"
	EventDoctorVisibility   EventType = "doctor.visibility_changed"
	EventAccountDeactivated EventType = "user.deactivated"
	EventUserActiveToggled  EventType = "user.active_toggled"
)

// Event é publicado para os painéis conectados
type Event struct {
	Type       EventType      `json:"type"`
	ActorID    string         `json:"actor_id,omitempty"`
	Subject    string         `json:"subject"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EventPublisher distribui eventos; falhas não devem afetar a operação de origem
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher descarta eventos
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
