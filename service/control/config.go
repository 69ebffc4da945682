// SPDX-License-Identifier: BSD-3-Clause

package control

import "github.com/At1ass/tt-riingd/pkg/appstate"

const (
	DefaultServiceName        = "control"
	DefaultServiceDescription = "Exposes the stop/version/temperatures/curve control endpoint over NATS micro"
	DefaultServiceVersion     = "1.0.0"
)

type config struct {
	serviceName        string
	serviceDescription string
	serviceVersion     string
	state              *appstate.State
}

// Option configures a Control service at construction time.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o *serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the default service name.
func WithServiceName(name string) Option { return &serviceNameOption{name: name} }

type stateOption struct{ state *appstate.State }

func (o *stateOption) apply(c *config) { c.state = o.state }

// WithState supplies the shared runtime state the control endpoint reads
// and mutates on behalf of RPC callers.
func WithState(state *appstate.State) Option { return &stateOption{state: state} }
