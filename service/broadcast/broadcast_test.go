// SPDX-License-Identifier: BSD-3-Clause

package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/At1ass/tt-riingd/pkg/appstate"
	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/ipc"
	"github.com/At1ass/tt-riingd/pkg/mapping"
)

func newTestState(t *testing.T, tickSeconds float64) *appstate.State {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf("version: 1\nmonitoring_tick_seconds: %g\n", tickSeconds)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	mgr := config.NewManager()
	require.NoError(t, mgr.Load(path))

	return appstate.New(mgr, nil, nil, mapping.New())
}

func newTestBroker(t *testing.T) *ipc.Broker {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	broker := ipc.NewBroker("test-broadcast", logger)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, broker.Start(ctx))
	t.Cleanup(func() { broker.Shutdown(context.Background()) })
	return broker
}

func TestBroadcastPublishesSampleCache(t *testing.T) {
	state := newTestState(t, 0.01)
	state.ReplaceSampleCache(map[string]float32{"cpu": 40})
	broker := newTestBroker(t)

	nc, err := broker.Connect()
	require.NoError(t, err)
	defer nc.Close()
	bus := eventbus.NewBus(nc, slog.New(slog.DiscardHandler))

	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()
	sub, err := bus.Subscribe(subCtx)
	require.NoError(t, err)
	defer sub.Close()

	svc := New(WithState(state), WithDeltaFilter(false))
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	go func() { _ = svc.Run(runCtx, broker) }()

	select {
	case ev := <-sub.Events():
		assert.Equal(t, eventbus.TemperatureChanged, ev.Kind)
		assert.InDelta(t, float32(40), ev.Temperatures["cpu"], 0.001)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for TemperatureChanged")
	}
}

func TestShouldPublishDeltaFilter(t *testing.T) {
	b := New(WithDeltaFilter(true))

	assert.True(t, b.shouldPublish(map[string]float32{"cpu": 40}), "first publish always goes through")

	b.lastPublished = map[string]float32{"cpu": 40}
	assert.False(t, b.shouldPublish(map[string]float32{"cpu": 40.1}), "sub-threshold delta is filtered")
	assert.True(t, b.shouldPublish(map[string]float32{"cpu": 40.3}), "delta at or above threshold passes")
	assert.True(t, b.shouldPublish(map[string]float32{}), "empty cache is never filtered")
}

func TestShouldPublishFilterDisabled(t *testing.T) {
	b := New(WithDeltaFilter(false))
	b.lastPublished = map[string]float32{"cpu": 40}
	assert.True(t, b.shouldPublish(map[string]float32{"cpu": 40}))
}

func TestBroadcastRunWithoutStateReturnsErrMissingState(t *testing.T) {
	broker := newTestBroker(t)
	svc := New()
	err := svc.Run(context.Background(), broker)
	assert.ErrorIs(t, err, ErrMissingState)
}
