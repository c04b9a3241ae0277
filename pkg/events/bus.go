package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Sink receives every envelope published on the bus, e.g. a cross-process forwarder.
type Sink interface {
	Forward(ctx context.Context, env Envelope) error
}

type subscriber struct {
	id      uint64
	deliver func(ctx context.Context, env Envelope) error
}

// Bus is an in-process publish/subscribe hub with optional outbound sinks.
// Delivery is synchronous and best effort; handler failures are logged and never
// reach the publisher.
type Bus struct {
	origin string
	logg   *logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	nextID uint64
	subs   map[enums.EventType][]subscriber
	sinks  []Sink
}

// NewBus constructs an empty bus identified by a random origin id.
func NewBus(logg *logger.Logger) *Bus {
	return &Bus{
		origin: uuid.NewString(),
		logg:   logg,
		now:    time.Now,
		subs:   make(map[enums.EventType][]subscriber),
	}
}

// Origin returns the id stamped on envelopes published by this bus.
func (b *Bus) Origin() string {
	return b.origin
}

// AddSink registers an outbound sink.
func (b *Bus) AddSink(sink Sink) {
	if sink == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

// Publish encodes payload under topic and delivers it locally and to every sink.
// Only sink errors are returned.
func Publish[T any](ctx context.Context, b *Bus, topic Topic[T], actor *ActorRef, payload T) error {
	if b == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic.Type, err)
	}
	env := Envelope{
		Version:    envelopeVersion,
		EventID:    uuid.NewString(),
		Type:       topic.Type,
		Origin:     b.origin,
		OccurredAt: b.now().UTC(),
		Actor:      actor,
		Data:       data,
	}

	b.Dispatch(ctx, env)

	b.mu.RLock()
	sinks := append([]Sink(nil), b.sinks...)
	b.mu.RUnlock()

	var errs error
	for _, sink := range sinks {
		errs = multierr.Append(errs, sink.Forward(ctx, env))
	}
	return errs
}

// Subscribe registers a typed handler and returns a function that removes it.
func Subscribe[T any](b *Bus, topic Topic[T], handler func(ctx context.Context, evt Event[T])) func() {
	deliver := func(ctx context.Context, env Envelope) error {
		var data T
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
		handler(ctx, Event[T]{
			ID:         env.EventID,
			Type:       env.Type,
			OccurredAt: env.OccurredAt,
			Actor:      env.Actor,
			Data:       data,
		})
		return nil
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic.Type] = append(b.subs[topic.Type], subscriber{id: id, deliver: deliver})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		current := b.subs[topic.Type]
		for i, sub := range current {
			if sub.id == id {
				b.subs[topic.Type] = append(current[:i:i], current[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers an envelope to local subscribers only.
func (b *Bus) Dispatch(ctx context.Context, env Envelope) {
	b.mu.RLock()
	subs := append([]subscriber(nil), b.subs[env.Type]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.deliver(ctx, env); err != nil && b.logg != nil {
			logCtx := b.logg.WithFields(ctx, map[string]any{
				"event_id":   env.EventID,
				"event_type": env.Type,
			})
			b.logg.Error(logCtx, "event.deliver_failed", err)
		}
	}
}
