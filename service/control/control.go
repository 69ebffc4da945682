// SPDX-License-Identifier: BSD-3-Clause

package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/At1ass/tt-riingd/pkg/assembly"
	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/ipc"
	"github.com/At1ass/tt-riingd/pkg/log"
	"github.com/At1ass/tt-riingd/service"
)

var _ service.Service = (*Control)(nil)

// Control is the control endpoint: a NATS micro service under
// ipc.QueueGroupControl exposing stop/version/get_temperatures/
// reload_config/switch_active_curve/get_active_curve/
// get_firmware_version/update_curve_data.
type Control struct {
	config  *config
	bus     *eventbus.Bus
	micro   micro.Service
	logger  *slog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// New builds a Control service. WithState is required.
func New(opts ...Option) *Control {
	cfg := &config{
		serviceName:        DefaultServiceName,
		serviceDescription: DefaultServiceDescription,
		serviceVersion:     DefaultServiceVersion,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Control{config: cfg}
}

// Name returns the service name.
func (c *Control) Name() string { return c.config.serviceName }

// Run registers the control endpoint's RPC surface and blocks until ctx
// is canceled.
func (c *Control) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
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

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("control: connect: %w", err)
	}
	defer nc.Drain() //nolint:errcheck

	c.bus = eventbus.NewBus(nc, c.logger)

	c.micro, err = micro.AddService(nc, micro.Config{
		Name:        c.config.serviceName,
		Description: c.config.serviceDescription,
		Version:     c.config.serviceVersion,
		QueueGroup:  ipc.QueueGroupControl,
	})
	if err != nil {
		return fmt.Errorf("control: add micro service: %w", err)
	}

	if err := c.registerEndpoints(ctx); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "control endpoint registered")

	<-ctx.Done()
	err = ctx.Err()
	c.logger.InfoContext(context.WithoutCancel(ctx), "stopping control endpoint")
	return err
}

func (c *Control) registerEndpoints(ctx context.Context) error {
	groups := make(map[string]micro.Group)
	endpoints := []struct {
		subject string
		handler micro.Handler
	}{
		{ipc.SubjectStop, c.wrap(ctx, c.handleStop)},
		{ipc.SubjectVersion, c.wrap(ctx, c.handleVersion)},
		{ipc.SubjectGetTemperatures, c.wrap(ctx, c.handleGetTemperatures)},
		{ipc.SubjectReloadConfig, c.wrap(ctx, c.handleReloadConfig)},
		{ipc.SubjectSwitchActiveCurve, c.wrap(ctx, c.handleSwitchActiveCurve)},
		{ipc.SubjectGetActiveCurve, c.wrap(ctx, c.handleGetActiveCurve)},
		{ipc.SubjectGetFirmwareVersion, c.wrap(ctx, c.handleGetFirmwareVersion)},
		{ipc.SubjectUpdateCurveData, c.wrap(ctx, c.handleUpdateCurveData)},
	}

	for _, ep := range endpoints {
		if err := ipc.RegisterEndpointWithGroupCache(c.micro, ep.subject, ep.handler, groups); err != nil {
			return fmt.Errorf("control: %w", err)
		}
	}
	return nil
}

// wrap adapts a parent-context-bound handler into a micro.Handler,
// detaching the request from ctx's cancellation so an in-flight RPC
// finishes even if the service begins shutting down.
func (c *Control) wrap(ctx context.Context, handler func(context.Context, micro.Request)) micro.HandlerFunc {
	return func(req micro.Request) {
		handler(context.WithoutCancel(ctx), req)
	}
}

func (c *Control) respondJSON(ctx context.Context, req micro.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		ipc.RespondWithError(ctx, req, err, "marshal response")
		return
	}
	if err := req.Respond(data); err != nil {
		c.logger.ErrorContext(ctx, "control: send response failed", "subject", req.Subject(), "error", err)
	}
}

func (c *Control) handleStop(ctx context.Context, req micro.Request) {
	c.respondJSON(ctx, req, StopResponse{Stopped: true})

	if err := c.bus.Publish(eventbus.Event{Kind: eventbus.SystemShutdown}); err != nil {
		if errors.Is(err, eventbus.ErrNoSubscribers) {
			c.logger.DebugContext(ctx, "control: stop published with no subscribers")
		} else {
			c.logger.ErrorContext(ctx, "control: publish SystemShutdown failed", "error", err)
		}
	}
}

func (c *Control) handleVersion(ctx context.Context, req micro.Request) {
	c.respondJSON(ctx, req, VersionResponse{Version: c.config.serviceVersion})
}

func (c *Control) handleGetTemperatures(ctx context.Context, req micro.Request) {
	c.respondJSON(ctx, req, GetTemperaturesResponse{Temperatures: c.config.state.SampleCache()})
}

func (c *Control) handleReloadConfig(ctx context.Context, req micro.Request) {
	change, err := c.config.state.ConfigManager().AnalyzeChanges()
	if err != nil {
		ipc.RespondWithError(ctx, req, err, "analyze configuration changes")
		return
	}

	var outcome string
	switch change.Kind {
	case config.HotReload:
		if err := c.config.state.ConfigManager().Reload(); err != nil {
			ipc.RespondWithError(ctx, req, err, "reload configuration")
			return
		}
		outcome = "hot reload applied"
	case config.ColdRestart:
		outcome = fmt.Sprintf("cold restart required: changed sections %v; controllers and sensors were not modified", change.ChangedSections)
	}

	if err := c.bus.Publish(eventbus.Event{Kind: eventbus.ConfigChangeDetected, ConfigChange: change}); err != nil {
		if errors.Is(err, eventbus.ErrNoSubscribers) {
			c.logger.DebugContext(ctx, "control: reload_config published with no subscribers")
		} else {
			c.logger.ErrorContext(ctx, "control: publish ConfigChangeDetected failed", "error", err)
		}
	}

	c.respondJSON(ctx, req, ReloadConfigResponse{Outcome: outcome})
}

func (c *Control) handleSwitchActiveCurve(ctx context.Context, req micro.Request) {
	var request SwitchActiveCurveRequest
	if err := json.Unmarshal(req.Data(), &request); err != nil {
		_ = req.Error("400", "invalid request format", nil)
		return
	}

	controllers := c.config.state.Controllers()
	if controllers == nil {
		ipc.RespondWithError(ctx, req, ErrMissingState, "no controllers configured")
		return
	}

	if err := controllers.SwitchActiveCurve(request.Controller, request.Channel, request.Curve); err != nil {
		ipc.RespondWithError(ctx, req, err, "switch active curve")
		return
	}

	c.respondJSON(ctx, req, struct{}{})
}

func (c *Control) handleGetActiveCurve(ctx context.Context, req micro.Request) {
	var request GetActiveCurveRequest
	if err := json.Unmarshal(req.Data(), &request); err != nil {
		_ = req.Error("400", "invalid request format", nil)
		return
	}

	controllers := c.config.state.Controllers()
	if controllers == nil {
		ipc.RespondWithError(ctx, req, ErrMissingState, "no controllers configured")
		return
	}

	name, err := controllers.ActiveCurve(request.Controller, request.Channel)
	if err != nil {
		ipc.RespondWithError(ctx, req, err, "get active curve")
		return
	}

	c.respondJSON(ctx, req, GetActiveCurveResponse{Curve: name})
}

func (c *Control) handleGetFirmwareVersion(ctx context.Context, req micro.Request) {
	var request GetFirmwareVersionRequest
	if err := json.Unmarshal(req.Data(), &request); err != nil {
		_ = req.Error("400", "invalid request format", nil)
		return
	}

	controllers := c.config.state.Controllers()
	if controllers == nil {
		ipc.RespondWithError(ctx, req, ErrMissingState, "no controllers configured")
		return
	}

	version, err := controllers.GetFirmwareVersion(ctx, request.Controller)
	if err != nil {
		ipc.RespondWithError(ctx, req, err, "get firmware version")
		return
	}

	c.respondJSON(ctx, req, GetFirmwareVersionResponse{Version: version.String()})
}

func (c *Control) handleUpdateCurveData(ctx context.Context, req micro.Request) {
	var request UpdateCurveDataRequest
	if err := json.Unmarshal(req.Data(), &request); err != nil {
		_ = req.Error("400", "invalid request format", nil)
		return
	}

	entry, err := config.ParseCurve([]byte(request.CurveData))
	if err != nil {
		ipc.RespondWithError(ctx, req, err, "parse curve data")
		return
	}
	entry.ID = request.Curve

	runtimeCurve, err := assembly.ConfigToCurve(entry)
	if err != nil {
		ipc.RespondWithError(ctx, req, err, "convert curve data")
		return
	}

	controllers := c.config.state.Controllers()
	if controllers == nil {
		ipc.RespondWithError(ctx, req, ErrMissingState, "no controllers configured")
		return
	}

	if err := controllers.UpdateCurveData(request.Controller, request.Channel, request.Curve, runtimeCurve); err != nil {
		ipc.RespondWithError(ctx, req, err, "update curve data")
		return
	}

	c.respondJSON(ctx, req, struct{}{})
}
