// SPDX-License-Identifier: BSD-3-Clause

// Package assembly turns the on-disk configuration schema (pkg/config)
// into the runtime objects the rest of the daemon operates on: a curve
// table, controller specs ready for pkg/controller.NewSet, a
// pkg/mapping.Index, a color table, and pkg/tempsource entries. It is
// the wiring step the coordinator's initialize transition runs once
// per (re)build of the shared state.
package assembly
