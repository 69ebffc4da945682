// SPDX-License-Identifier: BSD-3-Clause

package broadcast

import "errors"

var (
	// ErrServiceAlreadyStarted indicates Run was called a second time on
	// the same Broadcast instance.
	ErrServiceAlreadyStarted = errors.New("broadcast service already started")
	// ErrMissingState indicates New was never given a WithState option.
	ErrMissingState = errors.New("broadcast service: no appstate.State configured")
)
