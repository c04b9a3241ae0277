package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type publisher interface {
	Publish(ctx context.Context, channel string, message any) (int64, error)
}

type subscriberConn interface {
	Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error)
}

// RedisForwarder mirrors every published envelope onto a Redis channel.
type RedisForwarder struct {
	client  publisher
	channel string
}

// NewRedisForwarder constructs a sink that publishes to channel.
func NewRedisForwarder(client publisher, channel string) (*RedisForwarder, error) {
	if client == nil {
		return nil, errors.New("redis client required for event forwarder")
	}
	if channel == "" {
		return nil, errors.New("event channel is required")
	}
	return &RedisForwarder{client: client, channel: channel}, nil
}

// Forward implements Sink.
func (f *RedisForwarder) Forward(ctx context.Context, env Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if _, err := f.client.Publish(ctx, f.channel, string(raw)); err != nil {
		return fmt.Errorf("publish %s to %s: %w", env.Type, f.channel, err)
	}
	return nil
}

// Relay feeds envelopes published by other processes into the local bus.
type Relay struct {
	bus     *Bus
	conn    subscriberConn
	channel string
	logg    *logger.Logger
}

// NewRelay constructs a relay for channel.
func NewRelay(bus *Bus, conn subscriberConn, channel string, logg *logger.Logger) (*Relay, error) {
	if bus == nil {
		return nil, errors.New("event bus required")
	}
	if conn == nil {
		return nil, errors.New("redis client required for event relay")
	}
	if channel == "" {
		return nil, errors.New("event channel is required")
	}
	return &Relay{bus: bus, conn: conn, channel: channel, logg: logg}, nil
}

// Run blocks until ctx is cancelled or the subscription closes.
func (r *Relay) Run(ctx context.Context) error {
	sub, err := r.conn.Subscribe(ctx, r.channel)
	if err != nil {
		return err
	}
	defer sub.Close()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.Handle(ctx, msg.Payload)
		}
	}
}

// Handle decodes one raw message and dispatches it unless it originated locally.
func (r *Relay) Handle(ctx context.Context, payload string) {
	var env Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		if r.logg != nil {
			r.logg.Warn(r.logg.WithField(ctx, "channel", r.channel), "event.relay_decode_failed")
		}
		return
	}
	if env.Origin == r.bus.Origin() {
		return
	}
	r.bus.Dispatch(ctx, env)
}
