// SPDX-License-Identifier: BSD-3-Clause

// Package controller aggregates a HID device session (pkg/hiddev) with a
// fixed-size array of fan states (pkg/fan) and dispatches per-channel
// operations: pushing a computed duty cycle, reading back RPM, and setting
// a channel's RGB color. Set aggregates an ordered, 1-based-addressed
// collection of controllers built once from configuration at startup.
package controller
