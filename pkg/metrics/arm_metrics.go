// Armhost metric set
//
// Copyright (C) 2026  Armhost Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package metrics

import "sync"

// ArmMetrics bundles the metrics the arm host reports.
type ArmMetrics struct {
	registry *Registry

	// MovesTotal counts accepted move requests.
	MovesTotal *Counter

	// MovesRejected counts rejected moves by reason
	// (out_of_range, path_blocked).
	MovesRejected *Counter

	// PosesEmitted counts waypoint poses streamed to consumers.
	PosesEmitted *Counter

	// WaypointsSkipped counts waypoints the solver transiently rejected.
	WaypointsSkipped *Counter

	// PositionX and PositionY track the current end-effector position.
	PositionX *Gauge
	PositionY *Gauge
}

var (
	globalArm  *ArmMetrics
	globalOnce sync.Once
)

// NewArmMetrics creates the arm metric set on a fresh registry.
func NewArmMetrics() *ArmMetrics {
	r := NewRegistry()
	am := &ArmMetrics{
		registry:         r,
		MovesTotal:       NewCounter("armhost_moves_total", "Accepted move requests"),
		MovesRejected:    NewCounter("armhost_moves_rejected_total", "Rejected move requests by reason"),
		PosesEmitted:     NewCounter("armhost_poses_emitted_total", "Waypoint poses emitted"),
		WaypointsSkipped: NewCounter("armhost_waypoints_skipped_total", "Waypoints skipped as transiently unreachable"),
		PositionX:        NewGauge("armhost_position_x", "Current end-effector X"),
		PositionY:        NewGauge("armhost_position_y", "Current end-effector Y"),
	}
	r.Register(am.MovesTotal)
	r.Register(am.MovesRejected)
	r.Register(am.PosesEmitted)
	r.Register(am.WaypointsSkipped)
	r.Register(am.PositionX)
	r.Register(am.PositionY)
	return am
}

// Registry returns the underlying registry for rendering.
func (am *ArmMetrics) Registry() *Registry {
	return am.registry
}

// GlobalArmMetrics returns the process-wide arm metric set.
func GlobalArmMetrics() *ArmMetrics {
	globalOnce.Do(func() {
		globalArm = NewArmMetrics()
	})
	return globalArm
}
