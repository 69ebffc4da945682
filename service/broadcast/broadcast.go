// SPDX-License-Identifier: BSD-3-Clause

package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/log"
	"github.com/At1ass/tt-riingd/service"
)

var _ service.Service = (*Broadcast)(nil)

// Broadcast is the C12.rest broadcast loop: priority 3, non-critical.
// Every tick it republishes a snapshot of the shared sample cache as a
// TemperatureChanged event, optionally skipping ticks that moved less
// than DeltaThreshold on every sensor since the last publish.
type Broadcast struct {
	config *config
	bus    *eventbus.Bus
	logger *slog.Logger

	mu            sync.Mutex
	started       bool
	cancel        context.CancelFunc
	lastPublished map[string]float32
}

// New builds a Broadcast service. The delta filter defaults to enabled,
// matching the legacy behavior described in the spec.
func New(opts ...Option) *Broadcast {
	cfg := &config{
		serviceName:        DefaultServiceName,
		serviceDescription: DefaultServiceDescription,
		serviceVersion:     DefaultServiceVersion,
		deltaFilter:        true,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Broadcast{config: cfg}
}

// Name returns the service name.
func (b *Broadcast) Name() string { return b.config.serviceName }

// Run drives the broadcast loop until ctx is canceled.
func (b *Broadcast) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	b.logger = log.GetGlobalLogger().With("service", b.config.serviceName)

	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return ErrServiceAlreadyStarted
	}
	b.started = true
	ctx, b.cancel = context.WithCancel(ctx)
	b.mu.Unlock()

	if b.config.state == nil {
		return ErrMissingState
	}

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("broadcast: connect: %w", err)
	}
	defer nc.Drain() //nolint:errcheck

	b.bus = eventbus.NewBus(nc, b.logger)

	interval := period(b.config.state)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	b.logger.InfoContext(ctx, "starting broadcast loop", "period", interval, "delta_filter", b.config.deltaFilter)

	for {
		select {
		case <-ctx.Done():
			err := ctx.Err()
			b.logger.InfoContext(context.WithoutCancel(ctx), "stopping broadcast loop")
			return err
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

func (b *Broadcast) tick(ctx context.Context) {
	snapshot := b.config.state.SampleCache()

	if !b.shouldPublish(snapshot) {
		return
	}

	if err := b.bus.Publish(eventbus.Event{Kind: eventbus.TemperatureChanged, Temperatures: snapshot}); err != nil {
		if errors.Is(err, eventbus.ErrNoSubscribers) {
			b.logger.DebugContext(ctx, "broadcast: no subscribers")
		} else {
			b.logger.ErrorContext(ctx, "broadcast publish failed", "error", err)
			return
		}
	}

	b.lastPublished = maps.Clone(snapshot)
}

// shouldPublish applies the optional delta filter: a tick is skipped only
// when the cache is non-empty and no sensor moved by at least
// DeltaThreshold since the last publish.
func (b *Broadcast) shouldPublish(snapshot map[string]float32) bool {
	if !b.config.deltaFilter {
		return true
	}
	if len(snapshot) == 0 || b.lastPublished == nil {
		return true
	}
	for sensor, temp := range snapshot {
		prev, ok := b.lastPublished[sensor]
		if !ok || delta(temp, prev) >= DeltaThreshold {
			return true
		}
	}
	return false
}

func delta(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
