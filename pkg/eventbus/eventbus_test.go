package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ n int }

func (testEvent) Name() string { return "test.event" }

func TestBus_PublishToSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	var sum atomic.Int64

	for i := 0; i < 3; i++ {
		bus.Subscribe("test.event", func(ctx context.Context, e Event) error {
			sum.Add(int64(e.(testEvent).n))
			return nil
		})
	}
	bus.Subscribe("other.event", func(ctx context.Context, e Event) error {
		t.Error("не тот подписчик")
		return nil
	})

	bus.Publish(testEvent{n: 2})
	bus.Wait()

	assert.Equal(t, int64(6), sum.Load())
}

func TestBus_ListenerFailuresAreContained(t *testing.T) {
	bus := New(zap.NewNop())
	var called atomic.Bool

	bus.Subscribe("test.event", func(ctx context.Context, e Event) error { return errors.New("boom") })
	bus.Subscribe("test.event", func(ctx context.Context, e Event) error { panic("boom") })
	bus.Subscribe("test.event", func(ctx context.Context, e Event) error {
		called.Store(true)
		return nil
	})

	assert.NotPanics(t, func() {
		bus.Publish(testEvent{})
		bus.Wait()
	})
	assert.True(t, called.Load())
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(testEvent{})
	bus.Wait()
}
