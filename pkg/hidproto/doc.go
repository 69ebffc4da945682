// SPDX-License-Identifier: BSD-3-Clause

// Package hidproto implements the wire codec for the Thermaltake Riing Quad
// family HID protocol: command encoding and response decoding. It has no
// knowledge of transport — callers hand it a byte sink/source (see
// pkg/hiddev) and get back encoded command buffers and decoded responses.
package hidproto
