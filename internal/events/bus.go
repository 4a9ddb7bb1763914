// Package events is the in-process change-notification channel used to tell
// dependent views that underlying data changed.
package events

import (
	"log/slog"
	"sync"
)

// Topic names a kind of change. Notifications carry no payload beyond the topic.
type Topic string

const (
	BudgetsChanged  Topic = "budgets_changed"
	ClientsChanged  Topic = "clients_changed"
	ProductsChanged Topic = "products_changed"
	ExpensesChanged Topic = "expenses_changed"
	InvoicesChanged Topic = "invoices_changed"
)

type subscription struct {
	id    uint64
	topic Topic
	fn    func()
}

// Bus is a publish/subscribe channel safe for concurrent use.
//
// Publish is fire-and-forget: every subscriber runs on its own goroutine,
// delivery order is unspecified and nothing is replayed to late subscribers.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic][]subscription
	wg     sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic Topic, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, topic: topic, fn: fn})

	var once sync.Once

	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

// Publish notifies every current subscriber of topic.
func (b *Bus) Publish(topic Topic) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, s := range subs {
		b.wg.Add(1)

		go b.deliver(s)
	}
}

// Wait blocks until every delivery started so far has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}

func (b *Bus) deliver(s subscription) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event subscriber panicked", "topic", s.topic, "panic", r)
		}
	}()

	s.fn()
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id != id {
			continue
		}

		b.subs[topic] = append(subs[:i:i], subs[i+1:]...)

		break
	}

	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}
