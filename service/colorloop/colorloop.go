// SPDX-License-Identifier: BSD-3-Clause

package colorloop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/log"
	"github.com/At1ass/tt-riingd/pkg/mapping"
	"github.com/At1ass/tt-riingd/service"
)

var _ service.Service = (*ColorLoop)(nil)

// ColorLoop is the C12.rest color loop: priority 4, non-critical. Every
// period (and additionally whenever a TemperatureChanged event arrives)
// it applies every configured (color, fans) mapping and publishes
// ColorChanged.
type ColorLoop struct {
	config *config
	bus    *eventbus.Bus
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// New builds a ColorLoop service from the given options. WithState and
// WithColors are required.
func New(opts ...Option) *ColorLoop {
	cfg := &config{
		serviceName:        DefaultServiceName,
		serviceDescription: DefaultServiceDescription,
		serviceVersion:     DefaultServiceVersion,
		period:             DefaultPeriod,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &ColorLoop{config: cfg}
}

// Name returns the service name.
func (c *ColorLoop) Name() string { return c.config.serviceName }

// Run drives the color loop until ctx is canceled.
func (c *ColorLoop) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	c.logger = log.GetGlobalLogger().With("service", c.config.serviceName)

	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrServiceAlreadyStarted
	}
	c.started = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	if c.config.state == nil {
		return ErrMissingState
	}
	if c.config.colors == nil {
		return ErrMissingColors
	}

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("colorloop: connect: %w", err)
	}
	defer nc.Drain() //nolint:errcheck

	c.bus = eventbus.NewBus(nc, c.logger)
	sub, err := c.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("colorloop: subscribe: %w", err)
	}
	defer sub.Close()

	ticker := time.NewTicker(c.config.period)
	defer ticker.Stop()

	c.logger.InfoContext(ctx, "starting color loop", "period", c.config.period)

	for {
		select {
		case <-ctx.Done():
			err := ctx.Err()
			c.logger.InfoContext(context.WithoutCancel(ctx), "stopping color loop")
			return err
		case <-ticker.C:
			c.pass(ctx)
		case ev := <-sub.Events():
			if ev.Kind == eventbus.TemperatureChanged {
				c.pass(ctx)
			}
		case n := <-sub.Lagged():
			c.logger.WarnContext(ctx, "colorloop: event subscription lagged", "dropped", n)
		}
	}
}

// pass applies every (color, fans) mapping once and publishes
// ColorChanged. A color name absent from the table, or a failed channel
// write, is logged and does not abort the pass.
func (c *ColorLoop) pass(ctx context.Context) {
	state := c.config.state
	controllers := state.Controllers()

	for colorName, fans := range state.Mappings().ColorToFans() {
		rgb, ok := c.config.colors[colorName]
		if !ok {
			c.logger.WarnContext(ctx, "colorloop: unknown color name", "color", colorName)
			continue
		}
		for _, fr := range fans {
			c.applyColor(ctx, colorName, fr, rgb, controllers)
		}
	}

	if err := c.bus.Publish(eventbus.Event{Kind: eventbus.ColorChanged}); err != nil {
		if errors.Is(err, eventbus.ErrNoSubscribers) {
			c.logger.DebugContext(ctx, "colorloop: no subscribers")
		} else {
			c.logger.ErrorContext(ctx, "colorloop publish failed", "error", err)
		}
	}
}

func (c *ColorLoop) applyColor(ctx context.Context, colorName string, fr mapping.FanRef, rgb [3]uint8, controllers controllerColorSetter) {
	controllerID := byte(fr.Controller + 1)
	channel := byte(fr.Channel + 1)
	if err := controllers.UpdateChannelColor(ctx, controllerID, channel, rgb[0], rgb[1], rgb[2]); err != nil {
		c.logger.ErrorContext(ctx, "colorloop: update channel color failed",
			"color", colorName, "controller", controllerID, "channel", channel, "error", err)
	}
}

// controllerColorSetter is the narrow slice of controller.Set this
// service needs; declared locally so tests can substitute a fake.
type controllerColorSetter interface {
	UpdateChannelColor(ctx context.Context, controllerID, channel byte, r, g, b byte) error
}
