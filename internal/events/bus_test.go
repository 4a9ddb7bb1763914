package events_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/quotedesk/internal/events"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := events.NewBus()

	var dashboard, agenda, other atomic.Int32

	bus.Subscribe(events.BudgetsChanged, func() { dashboard.Add(1) })
	bus.Subscribe(events.BudgetsChanged, func() { agenda.Add(1) })
	bus.Subscribe(events.ClientsChanged, func() { other.Add(1) })

	bus.Publish(events.BudgetsChanged)
	bus.Wait()

	assert.Equal(t, int32(1), dashboard.Load())
	assert.Equal(t, int32(1), agenda.Load())
	assert.Equal(t, int32(0), other.Load())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus()

	var calls atomic.Int32

	unsubscribe := bus.Subscribe(events.BudgetsChanged, func() { calls.Add(1) })

	bus.Publish(events.BudgetsChanged)
	bus.Wait()

	unsubscribe()
	unsubscribe()

	bus.Publish(events.BudgetsChanged)
	bus.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := events.NewBus()

	assert.NotPanics(t, func() {
		bus.Publish(events.ExpensesChanged)
		bus.Wait()
	})
}

func TestBus_LateSubscriberMissesEarlierNotification(t *testing.T) {
	bus := events.NewBus()

	bus.Publish(events.BudgetsChanged)
	bus.Wait()

	var calls atomic.Int32

	bus.Subscribe(events.BudgetsChanged, func() { calls.Add(1) })
	bus.Wait()

	assert.Equal(t, int32(0), calls.Load())
}

func TestBus_PanickingSubscriberDoesNotAffectOthers(t *testing.T) {
	bus := events.NewBus()

	var calls atomic.Int32

	bus.Subscribe(events.BudgetsChanged, func() { panic("boom") })
	bus.Subscribe(events.BudgetsChanged, func() { calls.Add(1) })

	bus.Publish(events.BudgetsChanged)
	bus.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
