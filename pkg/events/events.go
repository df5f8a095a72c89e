// Package events streams per-example scoring diagnostics over an in-process
// pub/sub so CLI handlers and future sinks can observe reward breakdowns
// without coupling to the scoring path.
package events

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/go-go-golems/grillo/pkg/rewards"
)

type EventType string

const (
	EventTypeFormatScored EventType = "format-scored"
	EventTypeActionScored EventType = "action-scored"
)

// ScoredTopic is the default topic scoring events are published on.
const ScoredTopic = "scoring"

// ScoredEvent is one example's reward outcome. Exactly one of Format and
// Action is populated, matching the event type.
type ScoredEvent struct {
	EventType EventType                `json:"type"`
	Index     int                      `json:"index"`
	Score     float64                  `json:"score"`
	Format    *rewards.FormatBreakdown `json:"format,omitempty"`
	Action    *rewards.ActionBreakdown `json:"action,omitempty"`
}

func (e *ScoredEvent) Type() EventType {
	return e.EventType
}

// NewScoredEvent wraps a scored example into its event form.
func NewScoredEvent(example rewards.Example) *ScoredEvent {
	eventType := EventTypeFormatScored
	if example.Action != nil {
		eventType = EventTypeActionScored
	}
	return &ScoredEvent{
		EventType: eventType,
		Index:     example.Index,
		Score:     example.Score,
		Format:    example.Format,
		Action:    example.Action,
	}
}

func NewEventFromJSON(payload []byte) (*ScoredEvent, error) {
	var event ScoredEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.Wrap(err, "could not parse scoring event")
	}
	switch event.EventType {
	case EventTypeFormatScored, EventTypeActionScored:
		return &event, nil
	default:
		return nil, errors.Errorf("unknown scoring event type %q", event.EventType)
	}
}
