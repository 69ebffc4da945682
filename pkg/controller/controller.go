// SPDX-License-Identifier: BSD-3-Clause

package controller

import (
	"context"
	"fmt"

	"github.com/At1ass/tt-riingd/pkg/curve"
	"github.com/At1ass/tt-riingd/pkg/fan"
	"github.com/At1ass/tt-riingd/pkg/hiddev"
	"github.com/At1ass/tt-riingd/pkg/hidproto"
)

// Controller owns one device session and its fans' runtime state. Channel
// indexing on every exported method is 1-based, matching the external
// config/RPC surface; it is converted to a 0-based array index internally.
type Controller struct {
	ID      string
	session *hiddev.Session
	fans    []*fan.State
}

// New wraps a session and a 0-based-ordered slice of fan states (index 0 is
// channel 1, and so on) into a Controller.
func New(id string, session *hiddev.Session, fans []*fan.State) *Controller {
	return &Controller{ID: id, session: session, fans: fans}
}

func (c *Controller) fanAt(channel byte) (*fan.State, error) {
	if channel == 0 || int(channel) > len(c.fans) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChannel, channel)
	}
	return c.fans[channel-1], nil
}

// SendInit issues the Init command against this controller's session. Any
// failure here is fatal at startup per the coordinator's initialize
// transition.
func (c *Controller) SendInit(ctx context.Context) error {
	_, err := c.session.Init(ctx)
	return err
}

// GetFirmwareVersion returns the controller's firmware version string.
func (c *Controller) GetFirmwareVersion(ctx context.Context) (hidproto.FirmwareVersion, error) {
	return c.session.GetFirmwareVersion(ctx)
}

// UpdateChannel computes the duty for channel from temp using its active
// curve, pushes it via SetSpeed, reads back (speed, rpm) via GetData, and
// records the reading on the fan state. It returns the freshly recorded
// duty and RPM.
func (c *Controller) UpdateChannel(ctx context.Context, channel byte, temp float32) (duty byte, rpm uint16, err error) {
	f, err := c.fanAt(channel)
	if err != nil {
		return 0, 0, err
	}

	duty, err = f.ComputeSpeed(temp)
	if err != nil {
		return 0, 0, err
	}

	if _, err = c.session.SetSpeed(ctx, channel, duty); err != nil {
		return 0, 0, err
	}

	data, err := c.session.GetData(ctx, channel)
	if err != nil {
		return 0, 0, err
	}

	f.UpdateStats(data.Speed, data.RPM)
	return data.Speed, data.RPM, nil
}

// UpdateChannelColor sets channel to a static full-fan color.
func (c *Controller) UpdateChannelColor(ctx context.Context, channel byte, r, g, b byte) error {
	if _, err := c.fanAt(channel); err != nil {
		return err
	}
	colors := make([]hidproto.Color, hidproto.RGBColorCount)
	for i := range colors {
		colors[i] = hidproto.Color{R: r, G: g, B: b}
	}
	_, err := c.session.SetRgb(ctx, channel, hidproto.RGBStaticMode, colors)
	return err
}

// SwitchActiveCurve changes channel's active curve.
func (c *Controller) SwitchActiveCurve(channel byte, name string) error {
	f, err := c.fanAt(channel)
	if err != nil {
		return err
	}
	return f.SwitchCurve(name)
}

// ActiveCurve returns channel's active curve name.
func (c *Controller) ActiveCurve(channel byte) (string, error) {
	f, err := c.fanAt(channel)
	if err != nil {
		return "", err
	}
	return f.ActiveCurve(), nil
}

// UpdateCurveData replaces the data of a named curve on channel. The new
// curve must be of the same kind as the one it replaces.
func (c *Controller) UpdateCurveData(channel byte, name string, data curve.Curve) error {
	f, err := c.fanAt(channel)
	if err != nil {
		return err
	}
	return f.UpdateCurveData(name, data)
}

// LastReading returns channel's most recently recorded duty and RPM.
func (c *Controller) LastReading(channel byte) (duty byte, rpm uint16, err error) {
	f, err := c.fanAt(channel)
	if err != nil {
		return 0, 0, err
	}
	return f.LastDuty(), f.LastRPM(), nil
}

// Close releases the controller's underlying device session.
func (c *Controller) Close() error {
	return c.session.Close()
}
