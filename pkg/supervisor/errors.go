// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import "errors"

var (
	// ErrShutdownTimeout indicates a task did not observe cancellation
	// and return within its per-task timeout during ShutdownAll.
	ErrShutdownTimeout = errors.New("supervisor: shutdown timeout")
	// ErrDuplicateTask indicates Spawn was called with a name already
	// held by a running task.
	ErrDuplicateTask = errors.New("supervisor: duplicate task name")
	// ErrShuttingDown indicates Spawn was called after ShutdownAll had
	// already begun.
	ErrShuttingDown = errors.New("supervisor: shutting down")
)
