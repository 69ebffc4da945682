// SPDX-License-Identifier: BSD-3-Clause

package state

// Coordinator state and trigger names, shared between service/coordinator
// and its tests.
const (
	StateUninitialized = "uninitialized"
	StateInitialized   = "initialized"
	StateRunning       = "running"
	StateShutdown      = "shutdown"

	TriggerInitialize       = "initialize"
	TriggerStartAllServices = "start_all_services"
	TriggerShutdown         = "shutdown"
)

// NewCoordinatorMachine builds the daemon lifecycle state machine:
// Uninitialized -> Initialized -> Running -> Shutdown, with a shutdown
// trigger permitted from any non-terminal state. Callers attach entry
// actions via WithStateEntry/WithStateExit or per-transition actions via
// the Option helpers before constructing; the machine itself carries no
// behavior beyond the allowed transition graph.
func NewCoordinatorMachine(name string, opts ...Option) (*FSM, error) {
	baseOpts := []Option{
		WithName(name),
		WithDescription("tt-riingd coordinator lifecycle"),
		WithInitialState(StateUninitialized),
		WithStates(StateUninitialized, StateInitialized, StateRunning, StateShutdown),
		WithTransition(StateUninitialized, StateInitialized, TriggerInitialize),
		WithTransition(StateInitialized, StateRunning, TriggerStartAllServices),
		WithTransition(StateUninitialized, StateShutdown, TriggerShutdown),
		WithTransition(StateInitialized, StateShutdown, TriggerShutdown),
		WithTransition(StateRunning, StateShutdown, TriggerShutdown),
	}

	allOpts := append(baseOpts, opts...)
	config := NewConfig(allOpts...)
	return New(config)
}
