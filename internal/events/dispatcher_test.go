package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("DeliversToSubscribers", func(t *testing.T) {
		dispatcher := NewInMemoryDispatcher()

		var seen []Event
		dispatcher.Subscribe(EventProductCreated, func(_ context.Context, event Event) error {
			seen = append(seen, event)
			return nil
		})

		event := Event{ID: "1", Type: EventProductCreated, Slug: "gold-band", Timestamp: time.Now()}
		require.NoError(t, dispatcher.Publish(ctx, event))
		require.Len(t, seen, 1)
		assert.Equal(t, "gold-band", seen[0].Slug)
	})

	t.Run("IgnoresOtherTypes", func(t *testing.T) {
		dispatcher := NewInMemoryDispatcher()

		calls := 0
		dispatcher.Subscribe(EventProductDeleted, func(context.Context, Event) error {
			calls++
			return nil
		})

		require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventCategoryChanged}))
		assert.Zero(t, calls)
	})

	t.Run("HandlerErrorDoesNotStopOthers", func(t *testing.T) {
		dispatcher := NewInMemoryDispatcher()

		dispatcher.Subscribe(EventProductUpdated, func(context.Context, Event) error {
			return errors.New("handler failed")
		})
		reached := false
		dispatcher.Subscribe(EventProductUpdated, func(context.Context, Event) error {
			reached = true
			return nil
		})

		require.NoError(t, dispatcher.Publish(ctx, Event{Type: EventProductUpdated}))
		assert.True(t, reached)
	})
}
