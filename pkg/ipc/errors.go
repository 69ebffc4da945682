// SPDX-License-Identifier: BSD-3-Clause

package ipc

import "errors"

var (
	// ErrServerNotReady indicates the embedded broker did not become
	// ready for connections within its startup timeout.
	ErrServerNotReady = errors.New("ipc: broker not ready for connections")
	// ErrConnectionNotAvailable indicates InProcessConn was called
	// before Start.
	ErrConnectionNotAvailable = errors.New("ipc: broker connection not available")
	// ErrInvalidRequest indicates a control endpoint request failed
	// parameter validation.
	ErrInvalidRequest = errors.New("ipc: invalid request")
)
