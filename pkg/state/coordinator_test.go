// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinatorMachineStartsUninitialized(t *testing.T) {
	sm, err := NewCoordinatorMachine("coordinator")
	require.NoError(t, err)
	assert.Equal(t, StateUninitialized, sm.CurrentState())
}

func TestCoordinatorMachineFollowsLifecycle(t *testing.T) {
	sm, err := NewCoordinatorMachine("coordinator")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sm.Start(ctx))

	require.NoError(t, sm.Fire(ctx, TriggerInitialize, nil))
	assert.Equal(t, StateInitialized, sm.CurrentState())

	require.NoError(t, sm.Fire(ctx, TriggerStartAllServices, nil))
	assert.Equal(t, StateRunning, sm.CurrentState())

	require.NoError(t, sm.Fire(ctx, TriggerShutdown, nil))
	assert.Equal(t, StateShutdown, sm.CurrentState())
}

func TestCoordinatorMachineRejectsSkippingInitialize(t *testing.T) {
	sm, err := NewCoordinatorMachine("coordinator")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sm.Start(ctx))

	err = sm.Fire(ctx, TriggerStartAllServices, nil)
	assert.ErrorIs(t, err, ErrInvalidTrigger)
}

func TestCoordinatorMachineShutdownFromUninitialized(t *testing.T) {
	sm, err := NewCoordinatorMachine("coordinator")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sm.Start(ctx))
	require.NoError(t, sm.Fire(ctx, TriggerShutdown, nil))
	assert.Equal(t, StateShutdown, sm.CurrentState())
}
