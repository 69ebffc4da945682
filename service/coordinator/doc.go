// SPDX-License-Identifier: BSD-3-Clause

// Package coordinator drives the daemon's lifecycle state machine: it
// builds the shared runtime state, brings every service up in priority
// order, runs the main event loop, and tears everything down again on
// shutdown.
package coordinator
