// SPDX-License-Identifier: BSD-3-Clause

package colorloop

import "errors"

var (
	// ErrServiceAlreadyStarted indicates Run was called a second time on
	// the same ColorLoop instance.
	ErrServiceAlreadyStarted = errors.New("color loop service already started")
	// ErrMissingState indicates New was never given a WithState option.
	ErrMissingState = errors.New("color loop service: no appstate.State configured")
	// ErrMissingColors indicates New was never given a WithColors option.
	ErrMissingColors = errors.New("color loop service: no color table configured")
	// ErrUnknownColor is logged (not returned) when a mapping references
	// a color name absent from the color table.
	ErrUnknownColor = errors.New("unknown color name")
)
