// SPDX-License-Identifier: BSD-3-Clause

package configwatcher

import "errors"

var (
	// ErrServiceAlreadyStarted indicates Run was called a second time on
	// the same Watcher instance.
	ErrServiceAlreadyStarted = errors.New("config watcher service already started")
	// ErrMissingState indicates New was never given a WithState option.
	ErrMissingState = errors.New("config watcher service: no appstate.State configured")
	// ErrNoConfigPath indicates the configuration manager has not loaded
	// a file yet, so there is no path to watch.
	ErrNoConfigPath = errors.New("config watcher service: configuration manager has no resolved path")
)
