// Inverse kinematics solver tests
//
// Copyright (C) 2026  Armhost Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package arm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"armhost/pkg/errors"
)

const tol = 1e-6

func mustConfig(t *testing.T, l1, l2 float64, left bool) Config {
	t.Helper()
	cfg, err := NewConfig(l1, l2, left)
	require.NoError(t, err)
	return cfg
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(0, 150, false)
	assert.True(t, errors.Is(err, errors.ErrInvalidLength))

	_, err = NewConfig(200, -5, false)
	assert.True(t, errors.Is(err, errors.ErrInvalidLength))

	cfg, err := NewConfig(200, 150, true)
	require.NoError(t, err)
	assert.Equal(t, 350.0, cfg.MaxReach())
	assert.Equal(t, 50.0, cfg.MinReach())
	assert.True(t, cfg.LeftHanded)
}

func TestSolveBoundariesInclusive(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)

	// Fully extended: distance exactly l1+l2.
	_, err := Solve(cfg, Point{X: 350, Y: 0})
	assert.NoError(t, err, "full extension is reachable")

	// Fully folded: distance exactly |l1-l2|.
	_, err = Solve(cfg, Point{X: 0, Y: 50})
	assert.NoError(t, err, "full fold is reachable")
}

func TestSolveUnreachable(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)

	cases := []struct {
		name   string
		target Point
	}{
		{"beyond max reach", Point{X: 351, Y: 0}},
		{"inside dead zone", Point{X: 10, Y: 10}},
		{"origin", Point{X: 0, Y: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(cfg, tc.target)
			assert.True(t, errors.Is(err, errors.ErrUnreachable), "got %v", err)
		})
	}
}

func TestSolveOriginAlwaysUnreachable(t *testing.T) {
	// Equal links make MinReach zero, but the origin stays excluded: the
	// target angle is undefined there.
	cfg := mustConfig(t, 100, 100, false)
	_, err := Solve(cfg, Point{})
	assert.True(t, errors.Is(err, errors.ErrUnreachable))
}

func TestSolveRoundTrip(t *testing.T) {
	targets := []Point{
		{X: 150, Y: 150},
		{X: -120, Y: 80},
		{X: 60, Y: -45},
		{X: 349.9, Y: 0},
		{X: 0, Y: 50.1},
	}

	for _, left := range []bool{false, true} {
		cfg := mustConfig(t, 200, 150, left)
		for _, target := range targets {
			pose, err := Solve(cfg, target)
			require.NoError(t, err, "target %+v", target)

			// Link 1 spans shoulder to elbow, link 2 elbow to target.
			assert.True(t, scalar.EqualWithinAbs(pose.Elbow.Dist(), cfg.L1, tol),
				"elbow %+v not at link-1 radius", pose.Elbow)
			d2 := math.Hypot(target.X-pose.Elbow.X, target.Y-pose.Elbow.Y)
			assert.True(t, scalar.EqualWithinAbs(d2, cfg.L2, tol),
				"link 2 length %f for target %+v", d2, target)

			assert.Equal(t, target, pose.EndEffector, "end effector is the target verbatim")
			assert.Equal(t, Point{}, pose.Shoulder)
		}
	}
}

func TestSolveHandedness(t *testing.T) {
	leftCfg := mustConfig(t, 200, 150, true)
	rightCfg := mustConfig(t, 200, 150, false)
	target := Point{X: 150, Y: 150}

	leftPose, err := Solve(leftCfg, target)
	require.NoError(t, err)
	rightPose, err := Solve(rightCfg, target)
	require.NoError(t, err)

	// Away from full extension/fold the two IK branches give distinct
	// elbow positions.
	assert.False(t, scalar.EqualWithinAbs(leftPose.Elbow.X, rightPose.Elbow.X, tol) &&
		scalar.EqualWithinAbs(leftPose.Elbow.Y, rightPose.Elbow.Y, tol),
		"expected distinct elbows, got %+v and %+v", leftPose.Elbow, rightPose.Elbow)
}

func TestSolveHandednessCoincidesAtFullExtension(t *testing.T) {
	leftCfg := mustConfig(t, 200, 150, true)
	rightCfg := mustConfig(t, 200, 150, false)
	target := Point{X: 350, Y: 0}

	leftPose, err := Solve(leftCfg, target)
	require.NoError(t, err)
	rightPose, err := Solve(rightCfg, target)
	require.NoError(t, err)

	assert.True(t, scalar.EqualWithinAbs(leftPose.Elbow.X, rightPose.Elbow.X, tol))
	assert.True(t, scalar.EqualWithinAbs(leftPose.Elbow.Y, rightPose.Elbow.Y, tol))
}

func TestSolveClampNearBoundary(t *testing.T) {
	// A target a hair inside full extension can push cosAlpha past 1.0
	// through floating-point overshoot; the clamp must absorb it.
	cfg := mustConfig(t, 200, 150, false)
	d := cfg.MaxReach() * (1 - 1e-15)
	pose, err := Solve(cfg, Point{X: d, Y: 0})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(pose.Elbow.X))
	assert.False(t, math.IsNaN(pose.Elbow.Y))
}

func TestSolveConcreteScenario(t *testing.T) {
	// l1=200, l2=150, target (150,150): dist ~212.13, inside [50,350].
	cfg := mustConfig(t, 200, 150, false)
	target := Point{X: 150, Y: 150}
	assert.True(t, scalar.EqualWithinAbs(target.Dist(), 212.132034, 1e-5))
	assert.True(t, cfg.Reachable(target))

	pose, err := Solve(cfg, target)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(pose.Elbow.X))
}

func TestReachablePredicate(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)

	assert.True(t, cfg.Reachable(Point{X: 350, Y: 0}))
	assert.True(t, cfg.Reachable(Point{X: 50, Y: 0}))
	assert.False(t, cfg.Reachable(Point{X: 350.001, Y: 0}))
	assert.False(t, cfg.Reachable(Point{X: 49.999, Y: 0}))
	assert.False(t, cfg.Reachable(Point{}))
}
