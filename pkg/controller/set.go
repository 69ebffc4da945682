// SPDX-License-Identifier: BSD-3-Clause

package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/At1ass/tt-riingd/pkg/curve"
	"github.com/At1ass/tt-riingd/pkg/fan"
	"github.com/At1ass/tt-riingd/pkg/hiddev"
	"github.com/At1ass/tt-riingd/pkg/hidproto"
)

// FanSpec is the construction-time description of one fan entry: its
// display name, the curve names it should carry (filtered from the
// caller's global curve table; missing names are dropped silently), and
// the name of the curve that should start active.
type FanSpec struct {
	Name        string
	CurveNames  []string
	ActiveCurve string
}

// Spec is the construction-time description of one controller entry: its
// id, the USB selector used to open its HID endpoint, and its ordered fan
// entries (index 0 is channel 1).
type Spec struct {
	ID       string
	Selector hiddev.Selector
	Fans     []FanSpec
}

// Opener abstracts HID endpoint opening so Set can be built in tests
// without real hardware.
type Opener func(hiddev.Selector) (hiddev.DeviceIO, error)

// Set is an immutable, 1-based-addressed ordered collection of
// controllers built once from configuration at startup.
type Set struct {
	controllers []*Controller
}

// NewSet builds a Set from specs and a global curve table. For each spec,
// opening the HID endpoint is attempted via open; a failure is logged and
// the entry is skipped, so the set continues with the remaining entries.
// Each fan's curve map is the global table filtered down to the fan's
// declared curve names.
func NewSet(specs []Spec, curves map[string]curve.Curve, open Opener, logger *slog.Logger) *Set {
	s := &Set{}
	for _, spec := range specs {
		io, err := open(spec.Selector)
		if err != nil {
			logger.Warn("skipping controller: failed to open HID endpoint",
				"controller", spec.ID, "error", err)
			continue
		}

		fans := make([]*fan.State, 0, len(spec.Fans))
		for _, fs := range spec.Fans {
			table := make(map[string]curve.Curve, len(fs.CurveNames))
			for _, name := range fs.CurveNames {
				if c, ok := curves[name]; ok {
					table[name] = c
				}
			}
			fans = append(fans, fan.New(fs.Name, table, fs.ActiveCurve))
		}

		session := hiddev.NewSession(io)
		s.controllers = append(s.controllers, New(spec.ID, session, fans))
	}
	return s
}

// Len reports how many controllers are in the set.
func (s *Set) Len() int { return len(s.controllers) }

// Controllers returns the underlying ordered slice. Callers must not
// mutate it; the Set is immutable after construction.
func (s *Set) Controllers() []*Controller { return s.controllers }

func (s *Set) resolve(controllerID byte) (*Controller, error) {
	if controllerID == 0 || int(controllerID) > len(s.controllers) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownController, controllerID)
	}
	return s.controllers[controllerID-1], nil
}

// SendInitAll issues Init against every controller in the set, in order.
// The first failure is returned immediately: per spec, initialize's
// send_init is fatal on any error.
func (s *Set) SendInitAll(ctx context.Context) error {
	for _, c := range s.controllers {
		if err := c.SendInit(ctx); err != nil {
			return fmt.Errorf("controller %s: %w", c.ID, err)
		}
	}
	return nil
}

// UpdateChannel resolves controllerID (1-based) and delegates to its
// UpdateChannel.
func (s *Set) UpdateChannel(ctx context.Context, controllerID, channel byte, temp float32) (duty byte, rpm uint16, err error) {
	c, err := s.resolve(controllerID)
	if err != nil {
		return 0, 0, err
	}
	return c.UpdateChannel(ctx, channel, temp)
}

// UpdateChannelColor resolves controllerID (1-based) and delegates to its
// UpdateChannelColor.
func (s *Set) UpdateChannelColor(ctx context.Context, controllerID, channel byte, r, g, b byte) error {
	c, err := s.resolve(controllerID)
	if err != nil {
		return err
	}
	return c.UpdateChannelColor(ctx, channel, r, g, b)
}

// SwitchActiveCurve resolves controllerID (1-based) and delegates.
func (s *Set) SwitchActiveCurve(controllerID, channel byte, name string) error {
	c, err := s.resolve(controllerID)
	if err != nil {
		return err
	}
	return c.SwitchActiveCurve(channel, name)
}

// ActiveCurve resolves controllerID (1-based) and delegates.
func (s *Set) ActiveCurve(controllerID, channel byte) (string, error) {
	c, err := s.resolve(controllerID)
	if err != nil {
		return "", err
	}
	return c.ActiveCurve(channel)
}

// UpdateCurveData resolves controllerID (1-based) and delegates.
func (s *Set) UpdateCurveData(controllerID, channel byte, name string, data curve.Curve) error {
	c, err := s.resolve(controllerID)
	if err != nil {
		return err
	}
	return c.UpdateCurveData(channel, name, data)
}

// GetFirmwareVersion resolves controllerID (1-based) and delegates.
func (s *Set) GetFirmwareVersion(ctx context.Context, controllerID byte) (hidproto.FirmwareVersion, error) {
	c, err := s.resolve(controllerID)
	if err != nil {
		return hidproto.FirmwareVersion{}, err
	}
	return c.GetFirmwareVersion(ctx)
}

// Close closes every controller's device session, in order, without
// stopping at a failure; it returns the first error encountered, and any
// later errors are discarded.
func (s *Set) Close() error {
	var firstErr error
	for _, c := range s.controllers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
