// SPDX-License-Identifier: BSD-3-Clause

// Package eventbus is a broadcast, multi-producer/multi-consumer channel
// of typed daemon events, carried over the embedded NATS connection from
// pkg/ipc. Publish fans an Event out to every live Subscription; it is
// non-fatal to publish with no subscribers. A subscriber whose delivery
// channel falls behind observes Lagged rather than blocking the bus.
package eventbus
