// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the only configuration schema version this daemon
// accepts.
const SchemaVersion = 1

// Kebab-case kind discriminators (spec §6).
const (
	ControllerKindRiingQuad = "riing-quad"
	SensorKindLmSensors     = "lm-sensors"
	CurveKindConstant       = "constant"
	CurveKindStepCurve      = "step-curve"
	CurveKindBezier         = "bezier"
)

// Root is the configuration file's top-level record.
type Root struct {
	Version             int             `yaml:"version"`
	MonitoringTickSecs  float64          `yaml:"monitoring_tick_seconds"`
	BroadcastEnabled    bool             `yaml:"broadcast_enabled"`
	BroadcastPeriodSecs float64          `yaml:"broadcast_period_seconds"`
	Controllers         []Controller     `yaml:"controllers,omitempty"`
	Curves              []Curve          `yaml:"curves,omitempty"`
	Sensors             []Sensor         `yaml:"sensors,omitempty"`
	SensorMappings      []SensorMapping  `yaml:"sensor_mappings,omitempty"`
	Colors              []Color          `yaml:"colors,omitempty"`
	ColorMappings       []ColorMapping   `yaml:"color_mappings,omitempty"`
}

// applyDefaults applies the documented defaults for omitted scalar fields.
func (r *Root) applyDefaults() {
	if r.MonitoringTickSecs == 0 {
		r.MonitoringTickSecs = 2
	}
	if r.BroadcastPeriodSecs == 0 {
		r.BroadcastPeriodSecs = 2
	}
}

// Controller is a tagged variant; presently only RiingQuad exists.
type Controller struct {
	Kind     string    `yaml:"kind"`
	ID       string    `yaml:"id"`
	VID      uint16    `yaml:"vid"`
	PID      uint16    `yaml:"pid"`
	Serial   string    `yaml:"serial,omitempty"`
	Fans     []FanSpec `yaml:"fans"`
}

// FanSpec is one fan entry within a controller.
type FanSpec struct {
	Idx         uint8    `yaml:"idx"`
	Name        string   `yaml:"name"`
	ActiveCurve string   `yaml:"active_curve"`
	Curves      []string `yaml:"curves"`
}

// Curve is a tagged variant: Constant, StepCurve, or Bezier.
type Curve struct {
	Kind  string    `yaml:"kind"`
	ID    string    `yaml:"id"`
	Speed uint8     `yaml:"speed,omitempty"`
	Tmps  []float32 `yaml:"tmps,omitempty"`
	Spds  []uint8   `yaml:"spds,omitempty"`
	Points []Point  `yaml:"points,omitempty"`
}

// Point is one Bezier control point.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Sensor is a tagged variant; presently only LmSensors exists.
type Sensor struct {
	Kind    string `yaml:"kind"`
	ID      string `yaml:"id"`
	Chip    string `yaml:"chip"`
	Feature string `yaml:"feature"`
}

// FanTarget addresses one fan channel, 1-based on both axes as it appears
// in the configuration file.
type FanTarget struct {
	Controller uint8 `yaml:"controller"`
	FanIdx     uint8 `yaml:"fan_idx"`
}

// SensorMapping binds a sensor id to the fans it drives.
type SensorMapping struct {
	Sensor  string      `yaml:"sensor"`
	Targets []FanTarget `yaml:"targets"`
}

// Color is a named RGB triplet.
type Color struct {
	Name string    `yaml:"color"`
	RGB  [3]uint8  `yaml:"rgb"`
}

// ColorMapping binds a named color to the fans it paints.
type ColorMapping struct {
	Color   string      `yaml:"color"`
	Targets []FanTarget `yaml:"targets"`
}

// Parse decodes YAML bytes into a Root, applies defaults, and validates
// the schema version and every tagged variant's kind discriminator.
func Parse(data []byte) (*Root, error) {
	var root Root
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	root.applyDefaults()
	if err := root.validate(); err != nil {
		return nil, err
	}
	return &root, nil
}

// Marshal encodes a Root back to its YAML textual form.
func Marshal(root *Root) ([]byte, error) {
	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// ParseCurve decodes a single curve entry from its standalone YAML
// textual form, as received by the control endpoint's update_curve_data
// RPC.
func ParseCurve(data []byte) (Curve, error) {
	var c Curve
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Curve{}, fmt.Errorf("config: parse curve: %w", err)
	}
	switch c.Kind {
	case CurveKindConstant, CurveKindStepCurve, CurveKindBezier:
	default:
		return Curve{}, fmt.Errorf("%w: %q", ErrUnknownCurveKind, c.Kind)
	}
	return c, nil
}

// MarshalCurve encodes a single curve entry to its standalone YAML
// textual form.
func MarshalCurve(c Curve) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal curve: %w", err)
	}
	return data, nil
}

func (r *Root) validate() error {
	if r.Version != SchemaVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, r.Version, SchemaVersion)
	}
	for _, c := range r.Controllers {
		if c.Kind != ControllerKindRiingQuad {
			return fmt.Errorf("%w: %q on controller %q", ErrUnknownControllerKind, c.Kind, c.ID)
		}
	}
	for _, s := range r.Sensors {
		if s.Kind != SensorKindLmSensors {
			return fmt.Errorf("%w: %q on sensor %q", ErrUnknownSensorKind, s.Kind, s.ID)
		}
	}
	for _, cv := range r.Curves {
		switch cv.Kind {
		case CurveKindConstant, CurveKindStepCurve, CurveKindBezier:
		default:
			return fmt.Errorf("%w: %q on curve %q", ErrUnknownCurveKind, cv.Kind, cv.ID)
		}
	}
	return nil
}
