// SPDX-License-Identifier: BSD-3-Clause

package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/At1ass/tt-riingd/pkg/controller"
	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/log"
	"github.com/At1ass/tt-riingd/pkg/mapping"
	"github.com/At1ass/tt-riingd/service"
)

var _ service.Service = (*Monitoring)(nil)

// Monitoring is the C12.monitoring loop: priority 10, critical. Every
// tick it samples every configured sensor, drives each sensor's mapped
// fan channels, and publishes a TemperatureChanged snapshot.
type Monitoring struct {
	config *config
	bus    *eventbus.Bus
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// New builds a Monitoring service from the given options. WithState is
// required; Run returns ErrMissingState if it was never supplied.
func New(opts ...Option) *Monitoring {
	cfg := &config{
		serviceName:        DefaultServiceName,
		serviceDescription: DefaultServiceDescription,
		serviceVersion:     DefaultServiceVersion,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Monitoring{config: cfg}
}

// Name returns the service name.
func (m *Monitoring) Name() string { return m.config.serviceName }

// Run drives the monitoring loop until ctx is canceled.
func (m *Monitoring) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	m.logger = log.GetGlobalLogger().With("service", m.config.serviceName)

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return ErrServiceAlreadyStarted
	}
	m.started = true
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	if m.config.state == nil {
		return ErrMissingState
	}

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("monitoring: connect: %w", err)
	}
	defer nc.Drain() //nolint:errcheck

	m.bus = eventbus.NewBus(nc, m.logger)

	interval := tickInterval(m.config.state)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.InfoContext(ctx, "starting monitoring loop", "tick_interval", interval)

	for {
		select {
		case <-ctx.Done():
			err := ctx.Err()
			m.logger.InfoContext(context.WithoutCancel(ctx), "stopping monitoring loop")
			return err
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick samples every sensor once, drives each one's mapped fan channels,
// then atomically replaces the shared sample cache and publishes a
// TemperatureChanged event. A failure reading one sensor or updating one
// channel is logged and does not abort the rest of the tick.
func (m *Monitoring) tick(ctx context.Context) {
	state := m.config.state
	sensors := state.Sensors()
	mappings := state.Mappings()
	controllers := state.Controllers()

	snapshot := make(map[string]float32, len(sensors))
	for _, sensor := range sensors {
		temp, err := sensor.ReadTemperature(ctx)
		if err != nil {
			m.logger.ErrorContext(ctx, "sensor read failed", "sensor", sensor.Key(), "error", err)
			continue
		}
		snapshot[sensor.Key()] = temp

		for _, fr := range mappings.FansForSensor(sensor.Key()) {
			m.updateChannel(ctx, sensor.Key(), fr, temp, controllers)
		}
	}

	state.ReplaceSampleCache(snapshot)

	if err := m.bus.Publish(eventbus.Event{Kind: eventbus.TemperatureChanged, Temperatures: snapshot}); err != nil {
		if errors.Is(err, eventbus.ErrNoSubscribers) {
			m.logger.DebugContext(ctx, "temperature changed: no subscribers")
		} else {
			m.logger.ErrorContext(ctx, "publish temperature changed failed", "error", err)
		}
	}
}

func (m *Monitoring) updateChannel(ctx context.Context, sensorID string, fr mapping.FanRef, temp float32, controllers *controller.Set) {
	controllerID := byte(fr.Controller + 1)
	channel := byte(fr.Channel + 1)
	if _, _, err := controllers.UpdateChannel(ctx, controllerID, channel, temp); err != nil {
		m.logger.ErrorContext(ctx, "update channel failed",
			"sensor", sensorID, "controller", controllerID, "channel", channel, "error", err)
	}
}
