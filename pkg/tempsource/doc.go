// SPDX-License-Identifier: BSD-3-Clause

// Package tempsource provides the TemperatureSensor/Source abstraction the
// monitoring loop samples every tick, and a concrete implementation backed
// by lm-sensors-style hwmon sysfs files (pkg/hwmon).
package tempsource
