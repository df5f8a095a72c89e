package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// EventRouter wires an in-process gochannel pub/sub with handler dispatch.
type EventRouter struct {
	logger     watermill.LoggerAdapter
	Publisher  message.Publisher
	Subscriber message.Subscriber
	router     *message.Router
}

type EventRouterOption func(*EventRouter)

func WithLogger(logger watermill.LoggerAdapter) EventRouterOption {
	return func(r *EventRouter) {
		r.logger = logger
	}
}

func WithVerbose(verbose bool) EventRouterOption {
	return func(r *EventRouter) {
		if verbose {
			r.logger = NewWatermill(log.Logger)
		}
	}
}

func NewEventRouter(options ...EventRouterOption) (*EventRouter, error) {
	ret := &EventRouter{
		logger: watermill.NopLogger{},
	}
	for _, o := range options {
		o(ret)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		BlockPublishUntilSubscriberAck: true,
	}, ret.logger)
	ret.Publisher = pubSub
	ret.Subscriber = pubSub

	router, err := message.NewRouter(message.RouterConfig{}, ret.logger)
	if err != nil {
		return nil, err
	}
	ret.router = router

	return ret, nil
}

// PublishScored publishes one scoring event on the default topic.
func (e *EventRouter) PublishScored(event *ScoredEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "could not marshal scoring event")
	}
	return e.Publisher.Publish(ScoredTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// AddScoredHandler registers a handler receiving every scoring event on the
// default topic. Messages are acked regardless of handler outcome so one bad
// example cannot stall the stream.
func (e *EventRouter) AddScoredHandler(name string, handler func(context.Context, *ScoredEvent) error) {
	e.router.AddNoPublisherHandler(name, ScoredTopic, e.Subscriber, func(msg *message.Message) error {
		defer msg.Ack()

		event, err := NewEventFromJSON(msg.Payload)
		if err != nil {
			log.Error().Err(err).Str("message_id", msg.UUID).Msg("events: could not parse scoring event")
			return nil
		}
		if err := handler(msg.Context(), event); err != nil {
			log.Error().Err(err).Str("message_id", msg.UUID).Msg("events: scoring handler failed")
		}
		return nil
	})
}

func (e *EventRouter) Run(ctx context.Context) error {
	return e.router.Run(ctx)
}

// Running is closed once all handlers are up; publish only after it fires.
func (e *EventRouter) Running() chan struct{} {
	return e.router.Running()
}

func (e *EventRouter) Close() error {
	log.Debug().Msg("events: closing publisher")
	if err := e.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("events: failed to close pubsub")
	}
	return e.router.Close()
}
