// SPDX-License-Identifier: BSD-3-Clause

package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the NATS subject every Event is published and
// subscribed on. The bus is a single broadcast stream, not a per-kind
// routing table: subscribers filter on Event.Kind themselves.
const DefaultSubject = "events.broadcast"

// DefaultQueueCapacity bounds how many undelivered events a Subscription
// buffers before NATS reports it as a slow consumer.
const DefaultQueueCapacity = 100

// Bus is a cheaply cloneable handle onto the embedded broker's broadcast
// subject. The zero value is not usable; construct with NewBus.
type Bus struct {
	nc          *nats.Conn
	subject     string
	logger      *slog.Logger
	subscribers *int64
}

// NewBus wraps an established connection to the embedded broker (see
// pkg/ipc.Broker.Connect) as a Bus.
func NewBus(nc *nats.Conn, logger *slog.Logger) *Bus {
	var n int64
	return &Bus{
		nc:          nc,
		subject:     DefaultSubject,
		logger:      logger,
		subscribers: &n,
	}
}

// Publish encodes and broadcasts ev to every live Subscription. It returns
// ErrNoSubscribers (non-fatal) when nothing is currently subscribed;
// callers are expected to log and continue rather than treat this as a
// failure.
func (b *Bus) Publish(ev Event) error {
	if atomic.LoadInt64(b.subscribers) == 0 {
		return ErrNoSubscribers
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("eventbus: encode event: %w", err)
	}
	if err := b.nc.Publish(b.subject, data); err != nil {
		return fmt.Errorf("eventbus: publish: %w", err)
	}
	return nil
}

// Subscribe opens a new Subscription fed from every subsequent Publish.
// The returned Subscription must be closed to release broker resources
// and to let Publish correctly see zero remaining subscribers again.
func (b *Bus) Subscribe(ctx context.Context) (*Subscription, error) {
	events := make(chan Event, DefaultQueueCapacity)
	lagged := make(chan int, 1)

	sub := &Subscription{
		events: events,
		lagged: lagged,
		bus:    b,
	}

	nsub, err := b.nc.Subscribe(b.subject, func(msg *nats.Msg) {
		var ev Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			b.logger.ErrorContext(ctx, "eventbus: dropping malformed event", "error", err)
			return
		}
		select {
		case events <- ev:
		default:
			sub.reportLag()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("eventbus: subscribe: %w", err)
	}
	if err := nsub.SetPendingLimits(DefaultQueueCapacity, -1); err != nil {
		_ = nsub.Unsubscribe()
		return nil, fmt.Errorf("eventbus: set pending limits: %w", err)
	}
	sub.nsub = nsub

	atomic.AddInt64(b.subscribers, 1)

	context.AfterFunc(ctx, func() {
		_ = sub.Close()
	})

	return sub, nil
}

// Close is a no-op that always returns nil: the Bus holds no broker
// resources of its own. It does not close the underlying *nats.Conn,
// which callers may share with other components such as the control
// endpoint, and it does not close open Subscriptions.
func (b *Bus) Close() error {
	return nil
}

// Subscription is one consumer's view of the Bus. Events arrives in
// publish order; Lagged fires whenever the consumer fell behind and one
// or more events were dropped rather than delivered.
type Subscription struct {
	events chan Event
	lagged chan int

	nsub *nats.Subscription
	bus  *Bus

	closeOnce sync.Once
	dropped   int64
}

// Events returns the channel events are delivered on.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Lagged returns a channel that receives the running total of events this
// Subscription has dropped since it was created. A value is offered,
// without blocking, on every drop; if an earlier value is still unread,
// the new one is discarded.
func (s *Subscription) Lagged() <-chan int {
	return s.lagged
}

func (s *Subscription) reportLag() {
	n := atomic.AddInt64(&s.dropped, 1)
	select {
	case s.lagged <- int(n):
	default:
	}
}

// Close unsubscribes from the broker and releases the Subscription's
// slot against the Bus's subscriber count. Safe to call more than once.
func (s *Subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.nsub != nil {
			err = s.nsub.Unsubscribe()
		}
		atomic.AddInt64(s.bus.subscribers, -1)
	})
	if err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return fmt.Errorf("eventbus: unsubscribe: %w", err)
	}
	return nil
}
