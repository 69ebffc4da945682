// SPDX-License-Identifier: BSD-3-Clause

// Package appstate is the daemon's shared runtime state (C9): the
// controller set, the configured sensors, the sensor/color mapping
// index, and the latest temperature sample cache, all reachable behind
// one read/write-locked handle. Configuration itself lives in its own
// lock inside pkg/config.Manager; State only holds a reference to it.
package appstate
