// SPDX-License-Identifier: BSD-3-Clause

package broadcast

import (
	"time"

	"github.com/At1ass/tt-riingd/pkg/appstate"
)

const (
	DefaultServiceName        = "broadcast"
	DefaultServiceDescription = "Periodically republishes the temperature sample cache"
	DefaultServiceVersion     = "1.0.0"

	// DefaultTickInterval backs the period when the loaded configuration's
	// monitoring_tick_seconds is zero or unset (period is tick x2).
	DefaultTickInterval = 2 * time.Second

	// DeltaThreshold is the minimum per-sensor change, in degrees Celsius,
	// required to pass the optional delta filter.
	DeltaThreshold = 0.2
)

type config struct {
	serviceName        string
	serviceDescription string
	serviceVersion     string
	state              *appstate.State
	deltaFilter        bool
}

// Option configures a Broadcast service at construction time.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o *serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the default service name.
func WithServiceName(name string) Option { return &serviceNameOption{name: name} }

type stateOption struct{ state *appstate.State }

func (o *stateOption) apply(c *config) { c.state = o.state }

// WithState supplies the shared runtime state the loop reads the sample
// cache from.
func WithState(state *appstate.State) Option { return &stateOption{state: state} }

type deltaFilterOption struct{ enabled bool }

func (o *deltaFilterOption) apply(c *config) { c.deltaFilter = o.enabled }

// WithDeltaFilter toggles the legacy behavior of skipping a broadcast
// tick when no sensor moved by at least DeltaThreshold since the last
// publish and the cache is non-empty. Enabled by default.
func WithDeltaFilter(enabled bool) Option { return &deltaFilterOption{enabled: enabled} }

// period is tick_seconds x2 from the loaded configuration, falling back
// to DefaultTickInterval x2 when unset.
func period(state *appstate.State) time.Duration {
	root := state.ConfigManager().Get()
	if root == nil || root.MonitoringTickSecs <= 0 {
		return 2 * DefaultTickInterval
	}
	return time.Duration(root.MonitoringTickSecs * 2 * float64(time.Second))
}
