// SPDX-License-Identifier: BSD-3-Clause

package hiddev

import "errors"

var (
	// ErrOpenFailed indicates the underlying HID transport could not be
	// opened (no matching device, permission denied, transport error).
	ErrOpenFailed = errors.New("hiddev: failed to open device")
	// ErrIncompleteRead indicates a read returned fewer bytes than
	// requested.
	ErrIncompleteRead = errors.New("hiddev: incomplete read")
	// ErrTransport wraps opaque errors surfaced by the underlying
	// transport (write/read syscall failures).
	ErrTransport = errors.New("hiddev: transport error")
)
