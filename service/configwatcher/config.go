// SPDX-License-Identifier: BSD-3-Clause

package configwatcher

import (
	"time"

	"github.com/At1ass/tt-riingd/pkg/appstate"
)

const (
	DefaultServiceName        = "configwatcher"
	DefaultServiceDescription = "Watches the configuration file for changes and classifies them"
	DefaultServiceVersion     = "1.0.0"

	// DefaultDebounce is the spec's fixed 2000ms debounce window.
	DefaultDebounce = 2000 * time.Millisecond
)

type config struct {
	serviceName        string
	serviceDescription string
	serviceVersion     string
	state              *appstate.State
	debounce           time.Duration
}

// Option configures a Watcher service at construction time.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o *serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the default service name.
func WithServiceName(name string) Option { return &serviceNameOption{name: name} }

type stateOption struct{ state *appstate.State }

func (o *stateOption) apply(c *config) { c.state = o.state }

// WithState supplies the shared runtime state whose configuration
// manager names the file to watch and classify.
func WithState(state *appstate.State) Option { return &stateOption{state: state} }

type debounceOption struct{ debounce time.Duration }

func (o *debounceOption) apply(c *config) { c.debounce = o.debounce }

// WithDebounce overrides the default 2000ms debounce window.
func WithDebounce(debounce time.Duration) Option { return &debounceOption{debounce: debounce} }
