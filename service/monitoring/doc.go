// SPDX-License-Identifier: BSD-3-Clause

// Package monitoring implements the monitoring loop: the highest-priority,
// critical service that periodically samples every configured temperature
// sensor, drives the mapped fan channels off the freshly read value, and
// publishes the resulting snapshot on the event bus.
package monitoring
