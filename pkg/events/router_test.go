package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/grillo/pkg/rewards"
)

func TestScoredEventJSONRoundTrip(t *testing.T) {
	event := NewScoredEvent(rewards.Example{
		Index:  3,
		Score:  0.95,
		Format: &rewards.FormatBreakdown{ThinkPresent: true, Score: 0.95},
	})
	assert.Equal(t, EventTypeFormatScored, event.Type())

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	parsed, err := NewEventFromJSON(payload)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Index)
	assert.InDelta(t, 0.95, parsed.Score, 1e-9)
	require.NotNil(t, parsed.Format)
	assert.True(t, parsed.Format.ThinkPresent)

	_, err = NewEventFromJSON([]byte(`{"type": "bogus"}`))
	assert.Error(t, err)
}

func TestEventRouterDelivers(t *testing.T) {
	router, err := NewEventRouter()
	require.NoError(t, err)
	defer func() {
		_ = router.Close()
	}()

	received := make(chan *ScoredEvent, 1)
	router.AddScoredHandler("test-handler", func(_ context.Context, event *ScoredEvent) error {
		received <- event
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	err = router.PublishScored(NewScoredEvent(rewards.Example{
		Index:  0,
		Score:  1.0,
		Action: &rewards.ActionBreakdown{Score: 1.0},
	}))
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, EventTypeActionScored, event.EventType)
		assert.Equal(t, 1.0, event.Score)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for scoring event")
	}
}
