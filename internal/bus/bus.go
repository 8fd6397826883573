package bus

import (
	"context"
	"sync"
)

// Event types pushed to conversation subscribers
const (
	EventMessage = "message"
	EventTyping  = "botTyping"
	EventError   = "error"
)

// Event is a conversation-scoped notification. Topics are conversation IDs.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Bus decouples the chat pipeline from any concrete push transport.
// Publishing to a topic nobody subscribes to is a no-op.
type Bus interface {
	Publish(ctx context.Context, topic string, event Event) error
	// Subscribe returns a channel of events for the topic and a cancel
	// function releasing the subscription.
	Subscribe(ctx context.Context, topic string) (<-chan Event, func())
}

const subscriberBuffer = 16

// Memory is an in-process Bus. Slow subscribers drop events rather than
// block publishers.
type Memory struct {
	mu     sync.RWMutex
	nextID int
	topics map[string]map[int]chan Event
}

// NewMemory creates an in-process bus
func NewMemory() *Memory {
	return &Memory{topics: make(map[string]map[int]chan Event)}
}

// Publish delivers the event to every current subscriber of the topic
func (m *Memory) Publish(_ context.Context, topic string, event Event) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ch := range m.topics[topic] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a subscriber for the topic
func (m *Memory) Subscribe(_ context.Context, topic string) (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++

	ch := make(chan Event, subscriberBuffer)
	if m.topics[topic] == nil {
		m.topics[topic] = make(map[int]chan Event)
	}
	m.topics[topic][id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if subs, ok := m.topics[topic]; ok {
			if sub, ok := subs[id]; ok {
				delete(subs, id)
				close(sub)
			}
			if len(subs) == 0 {
				delete(m.topics, topic)
			}
		}
	}

	return ch, cancel
}
