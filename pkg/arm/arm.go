// Package arm provides the kinematic model for a planar two-link
// revolute-revolute robotic arm: workspace reachability, inverse kinematics
// with a left/right elbow branch, straight-line path validation against the
// inner dead zone, and discretized motion planning.
package arm

import (
	"math"

	"armhost/pkg/errors"
)

// Point is a position in arm-centered coordinates. The origin is the
// shoulder joint.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the distance of p from the shoulder origin.
func (p Point) Dist() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Pose is a fully resolved arm posture. Shoulder is always the origin;
// EndEffector is the target the pose was solved for.
type Pose struct {
	Shoulder    Point `json:"shoulder"`
	Elbow       Point `json:"elbow"`
	EndEffector Point `json:"end_effector"`
}

// Config describes the arm geometry and the IK branch choice. It is fixed
// at session start and never mutated.
type Config struct {
	L1         float64 // Shoulder-to-elbow link length
	L2         float64 // Elbow-to-end-effector link length
	LeftHanded bool    // Selects the elbow-up vs elbow-down IK branch
}

// NewConfig validates the link lengths and returns an arm configuration.
func NewConfig(l1, l2 float64, leftHanded bool) (Config, error) {
	if l1 <= 0 {
		return Config{}, errors.InvalidLengthError("l1", l1)
	}
	if l2 <= 0 {
		return Config{}, errors.InvalidLengthError("l2", l2)
	}
	return Config{L1: l1, L2: l2, LeftHanded: leftHanded}, nil
}

// MaxReach returns the outer radius of the reachable annulus (arm fully
// extended).
func (c Config) MaxReach() float64 {
	return c.L1 + c.L2
}

// MinReach returns the inner dead-zone radius (arm fully folded).
func (c Config) MinReach() float64 {
	return math.Abs(c.L1 - c.L2)
}

// Reachable reports whether p lies inside the closed reachable annulus.
// The exact origin is excluded: at distance zero the target angle is
// undefined, a kinematic singularity rather than an annulus boundary.
func (c Config) Reachable(p Point) bool {
	d := p.Dist()
	return d > 0 && d >= c.MinReach() && d <= c.MaxReach()
}
