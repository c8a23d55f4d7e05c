package resource

import (
	"context"
	"time"
)

// EventType identifies a resource lifecycle event.
type EventType string

// Lifecycle events emitted by a resource. Every remote operation emits a
// start event, then exactly one of success or failed.
const (
	ListStart     EventType = "resource.list.start"
	ListSuccess   EventType = "resource.list.success"
	ListFailed    EventType = "resource.list.failed"
	GetStart      EventType = "resource.get.start"
	GetSuccess    EventType = "resource.get.success"
	GetFailed     EventType = "resource.get.failed"
	CreateStart   EventType = "resource.create.start"
	CreateSuccess EventType = "resource.create.success"
	CreateFailed  EventType = "resource.create.failed"
	UpdateStart   EventType = "resource.update.start"
	UpdateSuccess EventType = "resource.update.success"
	UpdateFailed  EventType = "resource.update.failed"
	DeleteStart   EventType = "resource.delete.start"
	DeleteSuccess EventType = "resource.delete.success"
	DeleteFailed  EventType = "resource.delete.failed"
)

// Event describes one lifecycle notification. Count is the number of records
// involved where that makes sense (list success); Error carries the failure
// message on failed events.
type Event struct {
	Type      EventType      `json:"type"`
	Resource  string         `json:"resource"`
	Operation string         `json:"operation"`
	Params    map[string]any `json:"params,omitempty"`
	Count     int            `json:"count,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  time.Duration  `json:"duration,omitempty"`
}

// EventCallback is invoked for each matching event a subscriber registered
// for. Callbacks run on the bus's dispatch goroutine and must not block.
type EventCallback func(ctx context.Context, event Event) error

// newEvent assembles an event relative to the operation's start time.
func newEvent(t EventType, resource, operation string, params map[string]any, count int, errMsg string, start time.Time) Event {
	return Event{
		Type:      t,
		Resource:  resource,
		Operation: operation,
		Params:    params,
		Count:     count,
		Error:     errMsg,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
	}
}
