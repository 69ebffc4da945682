// SPDX-License-Identifier: BSD-3-Clause

package log

import "errors"

var (
	// ErrLoggerConfiguration indicates an invalid logger configuration.
	ErrLoggerConfiguration = errors.New("invalid logger configuration")
	// ErrNATSLogger indicates a failure in the NATS logger adapter.
	ErrNATSLogger = errors.New("NATS logger adapter error")
)
