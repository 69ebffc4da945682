// SPDX-License-Identifier: BSD-3-Clause

package monitoring

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
	"github.com/At1ass/tt-riingd/pkg/controller"
	"github.com/At1ass/tt-riingd/pkg/curve"
	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/hiddev"
	"github.com/At1ass/tt-riingd/pkg/hidproto"
	"github.com/At1ass/tt-riingd/pkg/ipc"
	"github.com/At1ass/tt-riingd/pkg/mapping"
	"github.com/At1ass/tt-riingd/pkg/tempsource"
)

type fakeIO struct {
	speed byte
	rpm   uint16
	lastWrite []byte
}

func (f *fakeIO) Write(p []byte) (int, error) {
	f.lastWrite = append([]byte(nil), p...)
	return len(p), nil
}

func (f *fakeIO) Read(p []byte, _ int) error {
	if len(f.lastWrite) >= 3 && f.lastWrite[1] == 0x33 && f.lastWrite[2] == 0x51 {
		p[2] = f.speed
		p[3] = byte(f.rpm)
		p[4] = byte(f.rpm >> 8)
		return nil
	}
	p[2] = hidproto.StatusSuccess
	f.speed = f.lastWrite[len(f.lastWrite)-1]
	f.rpm = 1500
	return nil
}

func (f *fakeIO) Close() error { return nil }

type fakeSensor struct {
	id   string
	temp float32
}

func (s *fakeSensor) Key() string { return s.id }

func (s *fakeSensor) ReadTemperature(context.Context) (float32, error) { return s.temp, nil }

func newTestState(t *testing.T, tickSeconds float64) *appstate.State {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf("version: 1\nmonitoring_tick_seconds: %g\n", tickSeconds)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	mgr := config.NewManager()
	require.NoError(t, mgr.Load(path))

	curves := map[string]curve.Curve{"silent": curve.NewConstant(20)}
	opener := func(hiddev.Selector) (hiddev.DeviceIO, error) { return &fakeIO{}, nil }
	set := controller.NewSet([]controller.Spec{
		{ID: "ctl-1", Fans: []controller.FanSpec{{Name: "fan1", CurveNames: []string{"silent"}, ActiveCurve: "silent"}}},
	}, curves, opener, slog.New(slog.DiscardHandler))

	idx := mapping.New()
	idx.LoadSensorMappings(map[string][]mapping.FanRef{
		"cpu": {{Controller: 0, Channel: 0}},
	})

	sensors := []tempsource.Sensor{&fakeSensor{id: "cpu", temp: 45}}

	return appstate.New(mgr, set, sensors, idx)
}

func newTestBroker(t *testing.T) *ipc.Broker {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	broker := ipc.NewBroker("test-monitoring", logger)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, broker.Start(ctx))
	t.Cleanup(func() { broker.Shutdown(context.Background()) })
	return broker
}

func TestMonitoringPublishesTemperatureChanged(t *testing.T) {
	state := newTestState(t, 0.02)
	broker := newTestBroker(t)

	nc, err := broker.Connect()
	require.NoError(t, err)
	defer nc.Close()
	logger := slog.New(slog.DiscardHandler)
	bus := eventbus.NewBus(nc, logger)

	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()
	sub, err := bus.Subscribe(subCtx)
	require.NoError(t, err)
	defer sub.Close()

	svc := New(WithState(state))

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	done := make(chan error, 1)
	go func() { done <- svc.Run(runCtx, broker) }()

	select {
	case ev := <-sub.Events():
		assert.Equal(t, eventbus.TemperatureChanged, ev.Kind)
		assert.InDelta(t, float32(45), ev.Temperatures["cpu"], 0.001)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for TemperatureChanged")
	}

	assert.Eventually(t, func() bool {
		return len(state.SampleCache()) == 1
	}, time.Second, 10*time.Millisecond)

	runCancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestMonitoringRunTwiceReturnsErrServiceAlreadyStarted(t *testing.T) {
	state := newTestState(t, 1)
	broker := newTestBroker(t)

	svc := New(WithState(state))

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = svc.Run(ctx, broker) }()
	time.Sleep(20 * time.Millisecond)

	err := svc.Run(context.Background(), broker)
	assert.ErrorIs(t, err, ErrServiceAlreadyStarted)

	cancel()
}

func TestMonitoringRunWithoutStateReturnsErrMissingState(t *testing.T) {
	broker := newTestBroker(t)
	svc := New()
	err := svc.Run(context.Background(), broker)
	assert.ErrorIs(t, err, ErrMissingState)
}
