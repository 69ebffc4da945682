// SPDX-License-Identifier: BSD-3-Clause

// Package configwatcher implements the configuration watcher: a
// non-critical service that observes the directory containing the
// configuration file for modify/create events, debounces them, runs the
// change classifier, and publishes ConfigChangeDetected.
package configwatcher
