package bus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublishSubscribe(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	ch, cancel := m.Subscribe(ctx, "conv-1")
	defer cancel()

	require.NoError(t, m.Publish(ctx, "conv-1", Event{Type: EventMessage, Payload: "hello"}))

	select {
	case event := <-ch:
		assert.Equal(t, EventMessage, event.Type)
		assert.Equal(t, "hello", event.Payload)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestMemoryTopicIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	ch, cancel := m.Subscribe(ctx, "conv-1")
	defer cancel()

	require.NoError(t, m.Publish(ctx, "conv-2", Event{Type: EventMessage}))

	select {
	case <-ch:
		t.Fatal("received event for another topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryCancelClosesChannel(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	ch, cancel := m.Subscribe(ctx, "conv-1")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic.
	require.NoError(t, m.Publish(ctx, "conv-1", Event{Type: EventTyping}))
}
