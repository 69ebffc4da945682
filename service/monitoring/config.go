// SPDX-License-Identifier: BSD-3-Clause

package monitoring

import (
	"time"

	"github.com/At1ass/tt-riingd/pkg/appstate"
)

const (
	DefaultServiceName        = "monitoring"
	DefaultServiceDescription = "Samples configured temperature sensors and drives mapped fan channels"
	DefaultServiceVersion     = "1.0.0"

	// DefaultTickInterval is used when the loaded configuration's
	// monitoring_tick_seconds is zero or unset.
	DefaultTickInterval = 2 * time.Second
)

type config struct {
	serviceName        string
	serviceDescription string
	serviceVersion     string
	state              *appstate.State
}

// Option configures a Monitoring service at construction time.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o *serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the default service name.
func WithServiceName(name string) Option { return &serviceNameOption{name: name} }

type stateOption struct{ state *appstate.State }

func (o *stateOption) apply(c *config) { c.state = o.state }

// WithState supplies the shared runtime state the loop reads sensors,
// mappings, and controllers from, and writes the sample cache to.
func WithState(state *appstate.State) Option { return &stateOption{state: state} }

// tickInterval reads the currently loaded configuration's
// monitoring_tick_seconds, falling back to DefaultTickInterval when unset.
func tickInterval(state *appstate.State) time.Duration {
	root := state.ConfigManager().Get()
	if root == nil || root.MonitoringTickSecs <= 0 {
		return DefaultTickInterval
	}
	return time.Duration(root.MonitoringTickSecs * float64(time.Second))
}
