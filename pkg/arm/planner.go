// Discretized straight-line motion planning with per-step IK resolves.
package arm

import (
	"armhost/pkg/errors"
)

// MoveSteps is the number of interpolation steps per move. Behavioral
// contract, not a tunable.
const MoveSteps = 40

// PlanMove validates a move from 'from' to 'to' and produces the ordered
// waypoint poses for it. It returns OutOfRange when the destination is not
// reachable and PathBlocked when the sampled straight line dips into the
// dead zone; in both cases no poses are produced.
//
// On success it returns at most MoveSteps poses. Waypoints accumulate
// per-step deltas rather than recomputing from the parameter, so
// floating-point drift builds up over the loop; the final pose is snapped
// to the exact destination afterwards. A waypoint the solver transiently
// rejects near the workspace boundary is skipped without aborting the move.
//
// Pacing is the caller's concern: the planner defines what the sequence is,
// not its real-time cadence.
func PlanMove(cfg Config, from, to Point) ([]Pose, error) {
	if _, err := Solve(cfg, to); err != nil {
		return nil, errors.OutOfRangeError(to.X, to.Y)
	}

	if !PathClear(cfg, from, to) {
		return nil, errors.PathBlockedError(from.X, from.Y, to.X, to.Y)
	}

	dx := (to.X - from.X) / MoveSteps
	dy := (to.Y - from.Y) / MoveSteps

	poses := make([]Pose, 0, MoveSteps)
	cx, cy := from.X, from.Y
	for i := 0; i < MoveSteps; i++ {
		cx += dx
		cy += dy

		pose, err := Solve(cfg, Point{X: cx, Y: cy})
		if err != nil {
			// Transient boundary miss; keep accumulating.
			continue
		}
		poses = append(poses, pose)
	}

	// Snap to the exact destination, eliminating accumulated drift. The
	// destination solved at the top of the function, so this cannot fail.
	final, err := Solve(cfg, to)
	if err != nil {
		return nil, errors.OutOfRangeError(to.X, to.Y)
	}
	if len(poses) > 0 {
		poses[len(poses)-1] = final
	} else {
		poses = append(poses, final)
	}

	return poses, nil
}
