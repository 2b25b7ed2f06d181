package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventStandingsInvalidated EventType = "standings-invalidated"
)

// Action is the kind of write that triggered an invalidation.
type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// Invalidation is the payload of EventStandingsInvalidated. It names the entity
// that changed so consumers can refresh every view derived from it.
type Invalidation struct {
	Entity string `msgpack:"entity" json:"entity"`
	ID     string `msgpack:"id" json:"id"`
	Action Action `msgpack:"action" json:"action"`
}
