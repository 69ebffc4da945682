// SPDX-License-Identifier: BSD-3-Clause

// Package log provides the daemon's structured logging. It wraps
// github.com/rs/zerolog in a log/slog handler so every component logs
// through the standard slog.Logger API while console output stays
// human-readable. An adapter bridges slog into the embedded NATS
// server's logger interface, and RedirectStdLog lets third-party
// libraries that still use the classic log package (notably the HID
// backend) funnel through the same sink.
package log
