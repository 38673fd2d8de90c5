// Package events provides a typed in-process publish/subscribe bus.
// It replaces ad-hoc broadcast signals with enumerated topics so that
// publishers and subscribers are statically checkable.
package events

import "sync"

// Topic names a class of change notifications.
type Topic string

const (
	TopicItemUpdated     Topic = "item.updated"
	TopicItemDeleted     Topic = "item.deleted"
	TopicProposalUpdated Topic = "proposal.updated"
	TopicProposalDeleted Topic = "proposal.deleted"
	TopicUserUpdated     Topic = "user.updated"
	TopicMoneyUpdated    Topic = "money.updated"
)

// Handler receives the ID of the changed entity; the ID may be empty for
// bulk changes.
type Handler func(id string)

// Bus is a fire-and-forget topic bus. Publish invokes subscribers
// synchronously in subscription order; a subscriber must not block.
// The zero value is not usable; call New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[Topic][]Handler)}
}

// Subscribe registers fn for a topic. Subscriptions cannot be removed;
// subscribers live as long as the process.
func (b *Bus) Subscribe(topic Topic, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], fn)
}

// Publish notifies all subscribers of the topic. Unknown topics are a no-op.
func (b *Bus) Publish(topic Topic, id string) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(id)
	}
}
