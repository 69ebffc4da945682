// SPDX-License-Identifier: BSD-3-Clause

package curve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantAlwaysReturnsSpeed(t *testing.T) {
	c := NewConstant(42)
	for _, temp := range []float32{-10, 0, 35.5, 100} {
		got, err := c.Evaluate(temp)
		require.NoError(t, err)
		assert.Equal(t, byte(42), got)
	}
}

func TestStepCurveScenarioA(t *testing.T) {
	c, err := NewStepCurve([]float32{30.0, 50.0, 70.0}, []byte{20, 60, 100})
	require.NoError(t, err)

	tests := []struct {
		temp float32
		want byte
	}{
		{40.0, 40},
		{50.0, 60},
		{60.0, 80},
	}
	for _, tt := range tests {
		got, err := c.Evaluate(tt.temp)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "temp=%v", tt.temp)
	}

	_, err = c.Evaluate(29.9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemperatureOutOfRange))
}

func TestStepCurveBoundsAndInvariant2(t *testing.T) {
	tmps := []float32{0, 25, 50, 75, 100}
	spds := []byte{10, 30, 60, 90, 100}
	c, err := NewStepCurve(tmps, spds)
	require.NoError(t, err)

	for temp := tmps[0]; temp <= tmps[len(tmps)-1]; temp += 0.37 {
		got, err := c.Evaluate(temp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, byte(10))
		assert.LessOrEqual(t, got, byte(100))
	}

	for i, tmp := range tmps {
		got, err := c.Evaluate(tmp)
		require.NoError(t, err)
		assert.Equal(t, spds[i], got)
	}
}

func TestStepCurveRejectsInvalidShape(t *testing.T) {
	_, err := NewStepCurve(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStepCurve))

	_, err = NewStepCurve([]float32{1, 2}, []byte{1})
	require.Error(t, err)

	_, err = NewStepCurve([]float32{2, 1}, []byte{1, 2})
	require.Error(t, err)
}

func TestBezierRequiresFourPoints(t *testing.T) {
	_, err := NewBezier([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBezierMustHaveFourPoints))
}

func TestBezierBoundedAndClamped(t *testing.T) {
	c, err := NewBezier([]Point{
		{X: 20, Y: 0},
		{X: 40, Y: 30},
		{X: 60, Y: 70},
		{X: 80, Y: 100},
	})
	require.NoError(t, err)

	for _, temp := range []float32{20, 35, 50, 65, 80} {
		got, err := c.Evaluate(temp)
		require.NoError(t, err)
		assert.LessOrEqual(t, got, byte(100))
		assert.GreaterOrEqual(t, got, byte(0))
	}
}

func TestKindPreservedAcrossConstruction(t *testing.T) {
	assert.Equal(t, KindConstant, NewConstant(1).Kind())

	step, err := NewStepCurve([]float32{1, 2}, []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, KindStepCurve, step.Kind())

	bez, err := NewBezier([]Point{{}, {}, {}, {}})
	require.NoError(t, err)
	assert.Equal(t, KindBezier, bez.Kind())
}
