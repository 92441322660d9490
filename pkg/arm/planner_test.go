// Motion planner tests
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

func TestPlanMoveProducesFullSequence(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	from := Point{X: 150, Y: 150}
	to := Point{X: 200, Y: 100}

	poses, err := PlanMove(cfg, from, to)
	require.NoError(t, err)
	assert.Len(t, poses, MoveSteps)

	// Waypoints advance monotonically toward the target.
	prev := from
	for i, pose := range poses {
		d := math.Hypot(pose.EndEffector.X-to.X, pose.EndEffector.Y-to.Y)
		dPrev := math.Hypot(prev.X-to.X, prev.Y-to.Y)
		assert.LessOrEqual(t, d, dPrev+tol, "waypoint %d moved away from target", i)
		prev = pose.EndEffector
	}
}

func TestPlanMoveSnapsFinalPose(t *testing.T) {
	cfg := mustConfig(t, 200, 150, true)
	from := Point{X: 150, Y: 150}
	// A target whose deltas do not accumulate exactly in floating point.
	to := Point{X: 130.1, Y: 170.3}

	poses, err := PlanMove(cfg, from, to)
	require.NoError(t, err)
	require.NotEmpty(t, poses)

	// Exact equality, not tolerance: the final pose is snapped to the
	// requested target after the loop.
	final := poses[len(poses)-1]
	assert.Equal(t, to, final.EndEffector)
}

func TestPlanMoveOutOfRange(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	from := Point{X: 150, Y: 150}

	poses, err := PlanMove(cfg, from, Point{X: 400, Y: 0})
	assert.Nil(t, poses)
	assert.True(t, errors.Is(err, errors.ErrOutOfRange), "got %v", err)

	poses, err = PlanMove(cfg, from, Point{})
	assert.Nil(t, poses)
	assert.True(t, errors.Is(err, errors.ErrOutOfRange))
}

func TestPlanMovePathBlocked(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)

	poses, err := PlanMove(cfg, Point{X: 150, Y: 0}, Point{X: -150, Y: 0})
	assert.Nil(t, poses)
	assert.True(t, errors.Is(err, errors.ErrPathBlocked), "got %v", err)
}

func TestPlanMoveSkipsTransientlyUnreachableWaypoints(t *testing.T) {
	// MinReach 0.5 puts the rejection threshold at -0.5, so the path
	// check cannot block a move through the origin, yet the waypoint
	// sampled exactly at the origin is unsolvable. The planner must skip
	// it and finish the move.
	cfg := mustConfig(t, 100.5, 100, false)
	from := Point{X: 100, Y: 0}
	to := Point{X: -100, Y: 0}

	poses, err := PlanMove(cfg, from, to)
	require.NoError(t, err)
	assert.Len(t, poses, MoveSteps-1, "origin waypoint skipped")

	final := poses[len(poses)-1]
	assert.Equal(t, to, final.EndEffector)
}

func TestPlanMoveZeroLength(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	p := Point{X: 150, Y: 150}

	poses, err := PlanMove(cfg, p, p)
	require.NoError(t, err)
	require.NotEmpty(t, poses)
	assert.Equal(t, p, poses[len(poses)-1].EndEffector)
}

func TestPlanMoveWaypointsAreSolvedPoses(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	poses, err := PlanMove(cfg, Point{X: 150, Y: 150}, Point{X: 100, Y: 200})
	require.NoError(t, err)

	for i, pose := range poses {
		assert.True(t, scalar.EqualWithinAbs(pose.Elbow.Dist(), cfg.L1, tol),
			"waypoint %d elbow off the link-1 circle", i)
	}
}
