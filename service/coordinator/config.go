// SPDX-License-Identifier: BSD-3-Clause

package coordinator

import (
	"time"

	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/controller"
	"github.com/At1ass/tt-riingd/pkg/ipc"
	"github.com/At1ass/tt-riingd/pkg/tempsource"
)

const (
	DefaultName = "tt-riingd"

	// DefaultStartupGrace is how long StartAllServices waits after
	// spawning each critical service before concluding it started cleanly.
	// There is no synchronous "ready" signal in this design — a critical
	// service that is going to fail fast (missing state, a bad NATS
	// connection) does so well within this window.
	DefaultStartupGrace = 250 * time.Millisecond
)

// coordConfig holds the Coordinator's construction-time options. Named
// to avoid colliding with the imported pkg/config package.
type coordConfig struct {
	name          string
	configManager *config.Manager
	broker        *ipc.Broker
	opener        controller.Opener
	sensorSource  tempsource.Source
	startupGrace  time.Duration
}

// Option configures a Coordinator at construction time.
type Option interface {
	apply(*coordConfig)
}

type nameOption struct{ name string }

func (o *nameOption) apply(c *coordConfig) { c.name = o.name }

// WithName overrides the state machine's name.
func WithName(name string) Option { return &nameOption{name: name} }

type configManagerOption struct{ mgr *config.Manager }

func (o *configManagerOption) apply(c *coordConfig) { c.configManager = o.mgr }

// WithConfigManager supplies the already-loaded configuration manager the
// coordinator assembles runtime state from.
func WithConfigManager(mgr *config.Manager) Option { return &configManagerOption{mgr: mgr} }

type brokerOption struct{ broker *ipc.Broker }

func (o *brokerOption) apply(c *coordConfig) { c.broker = o.broker }

// WithBroker supplies the embedded NATS broker every service connects
// to for IPC and event bus traffic.
func WithBroker(broker *ipc.Broker) Option { return &brokerOption{broker: broker} }

type openerOption struct{ opener controller.Opener }

func (o *openerOption) apply(c *coordConfig) { c.opener = o.opener }

// WithOpener overrides the HID endpoint opener used to build the
// controller set. Defaults to hiddev.Open; tests supply a fake.
func WithOpener(opener controller.Opener) Option { return &openerOption{opener: opener} }

type sensorSourceOption struct{ source tempsource.Source }

func (o *sensorSourceOption) apply(c *coordConfig) { c.sensorSource = o.source }

// WithSensorSource overrides the temperature sensor factory used to
// build the sensor list. Defaults to tempsource.NewHwmonSource(); tests
// supply a tempsource.MockSource.
func WithSensorSource(source tempsource.Source) Option { return &sensorSourceOption{source: source} }

type startupGraceOption struct{ d time.Duration }

func (o *startupGraceOption) apply(c *coordConfig) { c.startupGrace = o.d }

// WithStartupGrace overrides DefaultStartupGrace.
func WithStartupGrace(d time.Duration) Option { return &startupGraceOption{d: d} }
