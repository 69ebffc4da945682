// SPDX-License-Identifier: BSD-3-Clause

// Package supervisor is a named task registry with cooperative,
// bounded-timeout shutdown. It is deliberately lighter than a
// restart-oriented supervision tree: tasks here are not restarted on
// failure, only tracked and cancelled as a group. service/coordinator
// uses it to own every service.Service's Run goroutine for the
// lifetime of the Running state.
package supervisor
