// SPDX-License-Identifier: BSD-3-Clause

package coordinator

import "errors"

var (
	// ErrMissingConfigManager indicates New was never given a
	// WithConfigManager option.
	ErrMissingConfigManager = errors.New("coordinator: no config.Manager configured")
	// ErrMissingBroker indicates New was never given a WithBroker option.
	ErrMissingBroker = errors.New("coordinator: no ipc.Broker configured")
	// ErrAlreadyInitialized indicates Initialize was called more than
	// once on the same Coordinator.
	ErrAlreadyInitialized = errors.New("coordinator: already initialized")
	// ErrNotInitialized indicates StartAllServices or RunMainLoop was
	// called before Initialize succeeded.
	ErrNotInitialized = errors.New("coordinator: not initialized")
)
