// SPDX-License-Identifier: BSD-3-Clause

// Package hiddev owns one HID endpoint and serializes command/response
// pairs against it. It is the runtime counterpart to pkg/hidproto: hiddev
// knows how to talk to a device, hidproto knows how to speak its language.
//
// The low-level transport is abstracted behind the DeviceIO interface so
// the session can be exercised in tests without real hardware; the
// concrete implementation in device_hidraw.go backs it with
// github.com/sstallion/go-hid.
package hiddev
