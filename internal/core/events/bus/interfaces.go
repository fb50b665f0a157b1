package bus

import "time"

// EventBus is a synchronous in-process pub/sub bus for colony lifecycle events.
//
// Handlers subscribe by Kind and are called in subscription order on the
// publisher's goroutine. Errors from several handlers are joined and returned
// from Publish. Metrics are collected only while at least one observer is
// registered.
type EventBus interface {
	// Publish delivers the event to every active subscriber of event.Kind.
	Publish(event Event) error
	// PublishWithFilters drops the event silently if any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error
	PublishBatch(events ...Event) error

	Subscribe(kind Kind, handler EventHandler) (Subscription, error)
	// SubscribeAll registers a handler receiving every kind.
	SubscribeAll(handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Safe to call with nil.
	Unsubscribe(Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	GetMetrics() EventBusMetrics
}

type Kind string

const (
	KindUnitSpawned       Kind = "unit.spawned"
	KindUnitDied          Kind = "unit.died"
	KindUnitKilled        Kind = "unit.killed"
	KindProductionIssued  Kind = "production.issued"
	KindDispatchFailed    Kind = "dispatch.failed"
	KindRoomAdded         Kind = "room.added"
	KindRoomRemoved       Kind = "room.removed"
	KindUpgradeCompleted  Kind = "upgrade.completed"
	KindSnapshotPersisted Kind = "snapshot.persisted"
)

// Event is a value passed to handlers. Treat it as read-only.
type Event struct {
	ID        string
	Kind      Kind
	Tick      int64
	Room      string
	Unit      string
	Job       string
	Data      map[string]any
	Timestamp time.Time
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

type Subscription interface {
	ID() string
	Kind() Kind
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(event Event)
	OnDelivered(event Event, handlers int, err error, durationMicros int64)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
	SubscribersActive uint64
}
