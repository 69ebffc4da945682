// SPDX-License-Identifier: BSD-3-Clause

// Package control implements the control endpoint: the daemon's NATS
// micro RPC surface for stopping the process, querying temperatures and
// curves, and mutating curve assignments.
package control
