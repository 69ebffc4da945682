// SPDX-License-Identifier: BSD-3-Clause

package eventbus

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/At1ass/tt-riingd/pkg/ipc"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	broker := ipc.NewBroker("test-eventbus", logger)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, broker.Start(ctx))
	t.Cleanup(func() {
		broker.Shutdown(context.Background())
	})

	nc, err := broker.Connect()
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	return NewBus(nc, logger)
}

func TestPublishWithNoSubscribersReturnsErrNoSubscribers(t *testing.T) {
	bus := newTestBus(t)

	err := bus.Publish(Event{Kind: SystemShutdown})
	assert.ErrorIs(t, err, ErrNoSubscribers)
}

func TestSubscribeReceivesPublishedEvent(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer sub.Close()

	require.Eventually(t, func() bool {
		return bus.Publish(Event{Kind: TemperatureChanged, Temperatures: map[string]float32{"cpu": 42.5}}) == nil
	}, time.Second, 10*time.Millisecond)

	select {
	case ev := <-sub.Events():
		assert.Equal(t, TemperatureChanged, ev.Kind)
		assert.InDelta(t, float32(42.5), ev.Temperatures["cpu"], 0.001)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribeFanOutToMultipleSubscribers(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subA, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer subA.Close()

	subB, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer subB.Close()

	require.Eventually(t, func() bool {
		return bus.Publish(Event{Kind: ColorChanged}) == nil
	}, time.Second, 10*time.Millisecond)

	for _, s := range []*Subscription{subA, subB} {
		select {
		case ev := <-s.Events():
			assert.Equal(t, ColorChanged, ev.Kind)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for fan-out event")
		}
	}
}

func TestSubscriptionCloseStopsDelivery(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	require.Eventually(t, func() bool {
		return bus.Publish(Event{Kind: SystemShutdown}) != nil
	}, time.Second, 10*time.Millisecond)
}

func TestContextCancelClosesSubscription(t *testing.T) {
	bus := newTestBus(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	require.Eventually(t, func() bool {
		return bus.Publish(Event{Kind: SystemShutdown}) != nil
	}, time.Second, 10*time.Millisecond)
}
