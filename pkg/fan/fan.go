// SPDX-License-Identifier: BSD-3-Clause

package fan

import (
	"fmt"

	"github.com/At1ass/tt-riingd/pkg/curve"
)

// State is the per-channel runtime state: the set of curves available on
// this fan, which one is currently active, and the last readings pushed
// back from the device. It is created once per fan during controller
// construction and mutates for the life of the enclosing controller.
type State struct {
	Name        string
	activeCurve string
	curves      map[string]curve.Curve
	lastDuty    byte
	lastRPM     uint16
}

// New builds a fan state from a curve table and the name of the curve that
// should start active. Validation that activeCurve actually exists in
// curves is a higher-layer concern (ControllerSet construction drops
// missing references silently, per spec).
func New(name string, curves map[string]curve.Curve, activeCurve string) *State {
	table := make(map[string]curve.Curve, len(curves))
	for k, v := range curves {
		table[k] = v
	}
	return &State{
		Name:        name,
		activeCurve: activeCurve,
		curves:      table,
	}
}

// ActiveCurve returns the name of the currently active curve.
func (s *State) ActiveCurve() string { return s.activeCurve }

// LastDuty returns the most recently recorded duty percentage.
func (s *State) LastDuty() byte { return s.lastDuty }

// LastRPM returns the most recently recorded RPM reading.
func (s *State) LastRPM() uint16 { return s.lastRPM }

// ComputeSpeed evaluates the active curve at temp and returns the duty
// percentage. The active curve's own error (e.g. TemperatureOutOfRange) is
// propagated unchanged.
func (s *State) ComputeSpeed(temp float32) (byte, error) {
	c, ok := s.curves[s.activeCurve]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurve, s.activeCurve)
	}
	return c.Evaluate(temp)
}

// SwitchCurve changes the active curve to name. It is idempotent when name
// is already active. Returns ErrUnknownCurve if name is not in the fan's
// curve table.
func (s *State) SwitchCurve(name string) error {
	if _, ok := s.curves[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCurve, name)
	}
	s.activeCurve = name
	return nil
}

// UpdateCurveData replaces the stored curve named name with data. The
// existing and new curves must be of the same Kind; ErrIncompatibleCurveKind
// otherwise. Returns ErrUnknownCurve if name is absent.
func (s *State) UpdateCurveData(name string, data curve.Curve) error {
	existing, ok := s.curves[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCurve, name)
	}
	if existing.Kind() != data.Kind() {
		return fmt.Errorf("%w: %s is %s, replacement is %s", ErrIncompatibleCurveKind, name, existing.Kind(), data.Kind())
	}
	s.curves[name] = data
	return nil
}

// UpdateStats records the most recent duty/RPM reading pushed back from the
// device.
func (s *State) UpdateStats(speed byte, rpm uint16) {
	s.lastDuty = speed
	s.lastRPM = rpm
}

// CurveNames returns the set of curve names configured on this fan, for
// introspection (get_active_curve and similar control-endpoint queries use
// ActiveCurve directly; this is for diagnostics/tests).
func (s *State) CurveNames() []string {
	names := make([]string, 0, len(s.curves))
	for name := range s.curves {
		names = append(names, name)
	}
	return names
}
