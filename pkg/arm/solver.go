// Inverse kinematics solver for the two-link planar arm.
package arm

import (
	"math"

	"armhost/pkg/errors"
)

// Solve computes the arm pose placing the end effector at target. It
// returns Unreachable when the target lies outside the reachable annulus
// or at the origin; the distance checks run before any division by the
// target distance.
func Solve(cfg Config, target Point) (Pose, error) {
	dist := target.Dist()
	minReach := cfg.MinReach()
	maxReach := cfg.MaxReach()

	if dist > maxReach || dist < minReach || dist == 0 {
		return Pose{}, errors.UnreachableError(target.X, target.Y, dist, minReach, maxReach)
	}

	// Law of cosines for the angle between link 1 and the target ray.
	cosAlpha := (cfg.L1*cfg.L1 + dist*dist - cfg.L2*cfg.L2) / (2 * cfg.L1 * dist)

	// Clamp against floating-point overshoot near full extension/fold,
	// e.g. 1.0000001, which would make Acos return NaN.
	cosAlpha = math.Max(-1, math.Min(1, cosAlpha))

	alpha := math.Acos(cosAlpha)
	theta := math.Atan2(target.Y, target.X)

	// The handedness flag is the sole selector between the two IK
	// branches and is fixed for the whole session.
	var q1 float64
	if cfg.LeftHanded {
		q1 = theta + alpha
	} else {
		q1 = theta - alpha
	}

	elbow := Point{X: cfg.L1 * math.Cos(q1), Y: cfg.L1 * math.Sin(q1)}

	// The end effector is the supplied target verbatim: by construction
	// the second link's far end lands there within floating-point
	// tolerance, so it is not recomputed.
	return Pose{
		Shoulder:    Point{},
		Elbow:       elbow,
		EndEffector: target,
	}, nil
}
