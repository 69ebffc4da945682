// SPDX-License-Identifier: BSD-3-Clause

package tempsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSourceReadsConfiguredValues(t *testing.T) {
	src := &MockSource{Readings: map[string]float32{"cpu": 65.0}}
	sensors, err := src.Sensors(context.Background(), []Entry{{ID: "cpu"}})
	require.NoError(t, err)
	require.Len(t, sensors, 1)

	assert.Equal(t, "cpu", sensors[0].Key())
	temp, err := sensors[0].ReadTemperature(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(65.0), temp)
}
