// SPDX-License-Identifier: BSD-3-Clause

package control

import "errors"

var (
	// ErrServiceAlreadyStarted indicates Run was called a second time on
	// the same Control instance.
	ErrServiceAlreadyStarted = errors.New("control service already started")
	// ErrMissingState indicates New was never given a WithState option.
	ErrMissingState = errors.New("control service: no appstate.State configured")
	// ErrInvalidRequest indicates a request body failed to unmarshal or
	// was missing a required field.
	ErrInvalidRequest = errors.New("control: invalid request")
)
