// SPDX-License-Identifier: BSD-3-Clause

// Package broadcast implements the broadcast loop: a low-priority,
// non-critical service that periodically republishes a snapshot of the
// shared temperature sample cache as a TemperatureChanged event, for
// consumers that do not want to run their own monitoring cadence.
package broadcast
