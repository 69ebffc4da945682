// SPDX-License-Identifier: BSD-3-Clause

package monitoring

import "errors"

var (
	// ErrServiceAlreadyStarted indicates Run was called a second time on
	// the same Monitoring instance.
	ErrServiceAlreadyStarted = errors.New("monitoring service already started")
	// ErrMissingState indicates New was never given a WithState option.
	ErrMissingState = errors.New("monitoring service: no appstate.State configured")
)
