// SPDX-License-Identifier: BSD-3-Clause

// Package config owns the on-disk configuration: locating it, parsing it,
// holding it behind a reader/writer lock, saving it back atomically, and
// classifying whether a reload can be applied live or requires a cold
// restart of the affected subsystems.
package config
