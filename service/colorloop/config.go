// SPDX-License-Identifier: BSD-3-Clause

package colorloop

import (
	"time"

	"github.com/At1ass/tt-riingd/pkg/appstate"
)

const (
	DefaultServiceName        = "colorloop"
	DefaultServiceDescription = "Applies color-to-fan mappings on a fixed period and on temperature changes"
	DefaultServiceVersion     = "1.0.0"

	// DefaultPeriod is the color loop's fixed cadence (spec: 5s).
	DefaultPeriod = 5 * time.Second
)

type config struct {
	serviceName        string
	serviceDescription string
	serviceVersion     string
	state              *appstate.State
	colors             map[string][3]uint8
	period             time.Duration
}

// Option configures a ColorLoop service at construction time.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o *serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the default service name.
func WithServiceName(name string) Option { return &serviceNameOption{name: name} }

type stateOption struct{ state *appstate.State }

func (o *stateOption) apply(c *config) { c.state = o.state }

// WithState supplies the shared runtime state the loop reads the
// color->fan mapping index and controller set from.
func WithState(state *appstate.State) Option { return &stateOption{state: state} }

type colorsOption struct{ colors map[string][3]uint8 }

func (o *colorsOption) apply(c *config) { c.colors = o.colors }

// WithColors supplies the named RGB color table (see
// pkg/assembly.BuildColorTable).
func WithColors(colors map[string][3]uint8) Option { return &colorsOption{colors: colors} }

type periodOption struct{ period time.Duration }

func (o *periodOption) apply(c *config) { c.period = o.period }

// WithPeriod overrides the default 5s cadence.
func WithPeriod(period time.Duration) Option { return &periodOption{period: period} }
