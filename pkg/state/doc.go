// SPDX-License-Identifier: BSD-3-Clause

// Package state is a thread-safe finite state machine wrapper around
// qmuntal/stateless, with optional persistence and broadcast callbacks
// and a configurable per-transition timeout.
//
// # Core Concepts
//
// State Machine: a computational model consisting of a finite number of
// states, transitions between those states, and actions. At any given
// time the machine is in exactly one state.
//
// Trigger: an event that can cause a state transition. Triggers are only
// valid for specific states and their associated transitions; firing an
// unpermitted trigger returns ErrInvalidTrigger.
//
// Guard: a boolean condition that must hold for a transition to occur.
//
// Action: code executed when entering/exiting a state or during a
// transition.
//
// # Basic usage
//
//	config := NewConfig(
//		WithName("coordinator"),
//		WithInitialState("uninitialized"),
//		WithStates("uninitialized", "initialized", "running", "shutdown"),
//		WithTransition("uninitialized", "initialized", "initialize"),
//		WithTransition("initialized", "running", "start_all_services"),
//	)
//	sm, err := New(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := sm.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	if err := sm.Fire(ctx, "initialize", nil); err != nil {
//		log.Printf("transition failed: %v", err)
//	}
//
// NewCoordinatorMachine bakes the daemon's own four-state lifecycle
// (uninitialized/initialized/running/shutdown) into the above, so
// service/coordinator only supplies entry/exit actions.
//
// # Persistence and broadcast
//
// Persistence and broadcast callbacks must be set with
// SetPersistenceCallback/SetBroadcastCallback before Start; they fire
// whenever Fire completes a transition.
//
// # Thread safety
//
// All FSM operations are safe for concurrent use: reads (CurrentState,
// CanFire, PermittedTriggers) take a read lock, Fire takes a write lock
// for the duration of the transition plus its configured timeout.
//
// # Multi-machine management
//
// Manager tracks multiple named FSMs and stops them together via
// StopAll, for callers that run more than one machine in the same
// process.
package state
