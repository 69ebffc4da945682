// SPDX-License-Identifier: BSD-3-Clause

// Package ipc embeds a NATS server as the daemon's in-process message bus.
// It backs both the event bus (pkg/eventbus) and the control endpoint
// (service/control): no external broker process is required, and every
// consumer connects to it via an in-process net.Conn rather than a TCP
// socket.
//
// Broker owns the embedded server's lifecycle (Start/Shutdown) and
// implements nats.InProcessConnProvider so callers connect with
// nats.Connect("", nats.InProcessServer(broker)). RespondWithError is a
// small helper for NATS micro request handlers that standardizes logging
// and error-response formatting across service/control's endpoints.
package ipc
