// SPDX-License-Identifier: BSD-3-Clause

package eventbus

import "errors"

var (
	// ErrNoSubscribers indicates Publish was called with no live
	// subscriptions. Non-fatal: callers log and continue.
	ErrNoSubscribers = errors.New("eventbus: no subscribers")
	// ErrClosed indicates an operation on a Subscription or Bus after
	// Close.
	ErrClosed = errors.New("eventbus: closed")
)
