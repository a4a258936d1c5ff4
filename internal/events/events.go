// Package events publishes catalog change notifications after successful
// writes. Consumers receive one avro record per affected entity, keyed by
// store id so that changes of one store stay ordered.
package events

import (
	"context"
	"time"
)

// Action is the kind of change that happened to an entity
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Entity names used in events and metrics
const (
	EntityStore     = "store"
	EntityBillboard = "billboard"
	EntityCategory  = "category"
	EntitySize      = "size"
	EntityColor     = "color"
	EntityProduct   = "product"
)

// Event describes one catalog change
type Event struct {
	Entity     string    `avro:"entity"`
	Action     string    `avro:"action"`
	StoreID    string    `avro:"store_id"`
	EntityID   string    `avro:"entity_id"`
	ActorID    string    `avro:"actor_id"`
	OccurredAt time.Time `avro:"occurred_at"`
}

// New returns an event stamped with the current time
func New(entity string, action Action, storeID, entityID, actorID string) Event {
	return Event{
		Entity:     entity,
		Action:     string(action),
		StoreID:    storeID,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher hands events to the broker
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() {}
