// SPDX-License-Identifier: BSD-3-Clause

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/At1ass/tt-riingd/pkg/appstate"
	"github.com/At1ass/tt-riingd/pkg/assembly"
	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/controller"
	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/hiddev"
	"github.com/At1ass/tt-riingd/pkg/log"
	"github.com/At1ass/tt-riingd/pkg/state"
	"github.com/At1ass/tt-riingd/pkg/supervisor"
	"github.com/At1ass/tt-riingd/pkg/tempsource"
	"github.com/At1ass/tt-riingd/service"
	"github.com/At1ass/tt-riingd/service/broadcast"
	"github.com/At1ass/tt-riingd/service/colorloop"
	"github.com/At1ass/tt-riingd/service/configwatcher"
	"github.com/At1ass/tt-riingd/service/control"
	"github.com/At1ass/tt-riingd/service/monitoring"
)

// serviceEntry pairs a constructed service with the coordinator's
// startup policy for it: its priority (higher starts first) and whether
// its failure to start aborts the whole startup sequence.
type serviceEntry struct {
	svc      service.Service
	priority int
	critical bool
}

// Coordinator drives the daemon lifecycle state machine (C13):
// Uninitialized -> Initialized -> Running -> Shutdown.
type Coordinator struct {
	config *coordConfig
	fsm    *state.FSM
	sup    *supervisor.Supervisor
	bus    *eventbus.Bus
	logger *slog.Logger

	mu          sync.Mutex
	initialized bool
	appState    *appstate.State
	services    []serviceEntry
}

// New builds a Coordinator. WithConfigManager and WithBroker are
// required before calling Initialize.
func New(opts ...Option) *Coordinator {
	cfg := &coordConfig{
		name:         DefaultName,
		opener:       hiddev.Open,
		sensorSource: tempsource.NewHwmonSource(),
		startupGrace: DefaultStartupGrace,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Coordinator{config: cfg}
}

// Initialize builds the shared runtime state, sends init to every
// controller (fatal on failure, per the device session initialization
// contract), and registers every service in priority order. It performs
// the Uninitialized -> Initialized transition.
func (co *Coordinator) Initialize(ctx context.Context) error {
	co.logger = log.GetGlobalLogger().With("component", "coordinator")

	co.mu.Lock()
	if co.initialized {
		co.mu.Unlock()
		return ErrAlreadyInitialized
	}
	co.mu.Unlock()

	if co.config.configManager == nil {
		return ErrMissingConfigManager
	}
	if co.config.broker == nil {
		return ErrMissingBroker
	}

	fsm, err := state.NewCoordinatorMachine(co.config.name)
	if err != nil {
		return fmt.Errorf("coordinator: build state machine: %w", err)
	}
	if err := fsm.Start(ctx); err != nil {
		return fmt.Errorf("coordinator: start state machine: %w", err)
	}
	co.fsm = fsm

	root := co.config.configManager.Get()

	curves, curveErrs := assembly.BuildCurveTable(root.Curves)
	for _, cerr := range curveErrs {
		co.logger.WarnContext(ctx, "skipping invalid curve", "error", cerr)
	}

	specs := assembly.BuildControllerSpecs(root.Controllers)
	controllers := controller.NewSet(specs, curves, co.config.opener, co.logger)

	sensorEntries := assembly.BuildSensorEntries(root.Sensors)
	sensors, err := co.config.sensorSource.Sensors(ctx, sensorEntries)
	if err != nil {
		co.logger.WarnContext(ctx, "temperature sensor discovery failed", "error", err)
	}

	mappings := assembly.BuildMappingIndex(root.SensorMappings, root.ColorMappings)

	co.appState = appstate.New(co.config.configManager, controllers, sensors, mappings)

	if err := controllers.SendInitAll(ctx); err != nil {
		return fmt.Errorf("coordinator: initialize controllers: %w", err)
	}

	nc, err := co.config.broker.Connect()
	if err != nil {
		return fmt.Errorf("coordinator: connect: %w", err)
	}
	co.bus = eventbus.NewBus(nc, co.logger)

	colors := assembly.BuildColorTable(root.Colors)

	co.services = []serviceEntry{
		{svc: monitoring.New(monitoring.WithState(co.appState)), priority: 10, critical: true},
		{svc: control.New(control.WithState(co.appState)), priority: 8, critical: true},
		{svc: configwatcher.New(configwatcher.WithState(co.appState)), priority: 6, critical: false},
		{svc: colorloop.New(colorloop.WithState(co.appState), colorloop.WithColors(colors)), priority: 4, critical: false},
		{svc: broadcast.New(broadcast.WithState(co.appState)), priority: 3, critical: false},
	}
	sort.SliceStable(co.services, func(i, j int) bool { return co.services[i].priority > co.services[j].priority })

	if err := co.fsm.Fire(ctx, state.TriggerInitialize, nil); err != nil {
		return fmt.Errorf("coordinator: initialize transition: %w", err)
	}

	co.mu.Lock()
	co.initialized = true
	co.mu.Unlock()

	co.logger.InfoContext(ctx, "coordinator initialized",
		"controllers", controllers.Len(), "sensors", len(sensors), "services", len(co.services))
	return nil
}

// StartAllServices starts every registered service in descending
// priority order. A critical service that fails within its startup
// grace window aborts startup and the error propagates; a non-critical
// failure is logged and startup continues. It performs the
// Initialized -> Running transition.
func (co *Coordinator) StartAllServices(ctx context.Context) error {
	co.mu.Lock()
	initialized := co.initialized
	co.mu.Unlock()
	if !initialized {
		return ErrNotInitialized
	}

	co.sup = supervisor.New(ctx, co.logger)

	for _, entry := range co.services {
		if err := co.spawnService(entry); err != nil {
			return err
		}
	}

	if err := co.fsm.Fire(ctx, state.TriggerStartAllServices, nil); err != nil {
		return fmt.Errorf("coordinator: start_all_services transition: %w", err)
	}

	co.logger.InfoContext(ctx, "all services started")
	return nil
}

// spawnService hands entry.svc to the task supervisor. There is no
// synchronous "ready" signal in this design: a critical service is given
// a short grace window to fail fast (a bad connection, missing state)
// before StartAllServices concludes it started cleanly.
func (co *Coordinator) spawnService(entry serviceEntry) error {
	result := make(chan error, 1)
	task := func(taskCtx context.Context) error {
		err := entry.svc.Run(taskCtx, co.config.broker)
		result <- err
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if err := co.sup.Spawn(entry.svc.Name(), task); err != nil {
		return fmt.Errorf("coordinator: spawn %s: %w", entry.svc.Name(), err)
	}

	if !entry.critical {
		return nil
	}

	select {
	case err := <-result:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("coordinator: critical service %s failed during startup: %w", entry.svc.Name(), err)
		}
	case <-time.After(co.config.startupGrace):
	}
	return nil
}

// RunMainLoop subscribes to the event bus and blocks in the Running
// state until ctx is canceled or a SystemShutdown event arrives, then
// performs the -> Shutdown transition and tears every service down.
func (co *Coordinator) RunMainLoop(ctx context.Context) error {
	co.mu.Lock()
	initialized := co.initialized
	co.mu.Unlock()
	if !initialized {
		return ErrNotInitialized
	}

	sub, err := co.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("coordinator: subscribe: %w", err)
	}
	defer sub.Close()

	co.logger.InfoContext(ctx, "entering main loop")

	for {
		select {
		case <-ctx.Done():
			return co.Shutdown(context.WithoutCancel(ctx))

		case ev := <-sub.Events():
			switch ev.Kind {
			case eventbus.ConfigChangeDetected:
				co.handleConfigChange(ctx, ev.ConfigChange)
			case eventbus.SystemShutdown:
				co.logger.InfoContext(ctx, "system shutdown requested")
				return co.Shutdown(context.WithoutCancel(ctx))
			}

		case n := <-sub.Lagged():
			co.logger.WarnContext(ctx, "coordinator subscription lagged", "dropped", n)
		}
	}
}

// handleConfigChange applies a HotReload by reloading the configuration
// manager and rebuilding the mapping index; a ColdRestart is logged as
// operator guidance and never mutates the controller set or sensors.
func (co *Coordinator) handleConfigChange(ctx context.Context, change config.Change) {
	switch change.Kind {
	case config.HotReload:
		if err := co.config.configManager.Reload(); err != nil {
			co.logger.ErrorContext(ctx, "hot reload: re-parse failed, keeping previous configuration", "error", err)
			return
		}
		root := co.config.configManager.Get()
		mappings := assembly.BuildMappingIndex(root.SensorMappings, root.ColorMappings)
		co.appState.ReplaceMappings(mappings)
		co.logger.InfoContext(ctx, "hot reload applied",
			"sensor_mappings", len(root.SensorMappings), "color_mappings", len(root.ColorMappings))

	case config.ColdRestart:
		co.logger.WarnContext(ctx, "configuration change requires a cold restart; controllers and sensors were not modified",
			"changed_sections", change.ChangedSections)
	}
}

// Shutdown performs the -> Shutdown transition and stops every running
// service via the task supervisor, aggregating outcomes the same way
// ShutdownAll does.
func (co *Coordinator) Shutdown(ctx context.Context) error {
	if co.fsm != nil {
		if err := co.fsm.Fire(ctx, state.TriggerShutdown, nil); err != nil {
			co.logger.WarnContext(ctx, "shutdown transition rejected", "error", err)
		}
	}

	var shutdownErr error
	if co.sup != nil {
		shutdownErr = co.sup.ShutdownAll()
	}
	if co.bus != nil {
		if err := co.bus.Close(); err != nil {
			co.logger.WarnContext(ctx, "event bus close failed", "error", err)
		}
	}

	if shutdownErr != nil {
		co.logger.ErrorContext(ctx, "shutdown completed with errors", "error", shutdownErr)
	} else {
		co.logger.InfoContext(ctx, "shutdown complete")
	}
	return shutdownErr
}

// Run drives the full lifecycle: Initialize, StartAllServices, and
// RunMainLoop in sequence. It returns whatever RunMainLoop or an earlier
// failed transition returns.
func (co *Coordinator) Run(ctx context.Context) error {
	if err := co.Initialize(ctx); err != nil {
		return err
	}
	if err := co.StartAllServices(ctx); err != nil {
		_ = co.Shutdown(context.WithoutCancel(ctx))
		return err
	}
	return co.RunMainLoop(ctx)
}
