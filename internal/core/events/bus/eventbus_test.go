package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ Event, handlers int, err error, _ int64) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got Event
	_, err := b.Subscribe(KindUnitSpawned, func(e Event) error {
		got = e
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ev := NewEvent(KindUnitSpawned, 7, "W1N1").WithUnit("u1", "harvester")
	if err = b.Publish(ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got.ID != ev.ID || got.Unit != "u1" || got.Job != "harvester" || got.Tick != 7 {
		t.Fatalf("unexpected event delivered: %+v", got)
	}
}

func TestKindRouting(t *testing.T) {
	b := New()
	spawned, died, all := 0, 0, 0
	_, _ = b.Subscribe(KindUnitSpawned, func(Event) error { spawned++; return nil })
	_, _ = b.Subscribe(KindUnitDied, func(Event) error { died++; return nil })
	_, _ = b.SubscribeAll(func(Event) error { all++; return nil })

	require.NoError(t, b.Publish(NewEvent(KindUnitSpawned, 1, "")))
	require.NoError(t, b.Publish(NewEvent(KindUnitSpawned, 1, "")))
	require.NoError(t, b.Publish(NewEvent(KindUnitDied, 1, "")))

	assert.Equal(t, 2, spawned)
	assert.Equal(t, 1, died)
	assert.Equal(t, 3, all)
}

func TestDeliveryOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		_, _ = b.Subscribe(KindRoomAdded, func(Event) error { order = append(order, i); return nil })
	}
	require.NoError(t, b.Publish(NewEvent(KindRoomAdded, 0, "W1N1")))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	count := 0
	sub, err := b.Subscribe(KindUnitDied, func(Event) error { count++; return nil })
	require.NoError(t, err)

	_ = b.Publish(NewEvent(KindUnitDied, 0, ""))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, b.Unsubscribe(nil))
	_ = b.Publish(NewEvent(KindUnitDied, 0, ""))

	assert.Equal(t, 1, count)
	assert.False(t, sub.IsActive())
}

func TestErrorsJoined(t *testing.T) {
	b := New()
	e1, e2 := errors.New("one"), errors.New("two")
	_, _ = b.Subscribe(KindDispatchFailed, func(Event) error { return e1 })
	_, _ = b.Subscribe(KindDispatchFailed, func(Event) error { return e2 })

	err := b.PublishBatch(NewEvent(KindDispatchFailed, 0, ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}

func TestSubscribeValidation(t *testing.T) {
	b := New()
	_, err := b.Subscribe(KindUnitDied, nil)
	assert.ErrorIs(t, err, ErrNilHandler)
	_, err = b.Subscribe("", func(Event) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyKind)
}

func TestObserverAndMetrics(t *testing.T) {
	b := New()
	obs := &testObserver{}
	b.AddObserver(obs)

	_, _ = b.Subscribe(KindUnitKilled, func(Event) error { return errors.New("x") })
	_ = b.Publish(NewEvent(KindUnitKilled, 0, ""))
	_ = b.PublishWithFilters(NewEvent(KindUnitKilled, 0, ""), func(Event) bool { return false })

	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 1, obs.deliveredCount)
	assert.Error(t, obs.lastErr)

	m := b.GetMetrics()
	assert.Equal(t, uint64(1), m.Published)
	assert.Equal(t, uint64(1), m.Errors)
	assert.Equal(t, uint64(1), m.DroppedByFilters)
	assert.Equal(t, uint64(1), m.SubscribersActive)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent(KindUnitKilled, 0, ""))
	assert.Equal(t, 1, obs.publishCount)
}

func TestEventWithCopiesData(t *testing.T) {
	base := NewEvent(KindProductionIssued, 3, "W1N1").With("cost", 250)
	derived := base.With("budget", 300)
	assert.Len(t, base.Data, 1)
	assert.Len(t, derived.Data, 2)
	assert.NotEqual(t, base.ID, NewEvent(KindProductionIssued, 3, "W1N1").ID)
}
