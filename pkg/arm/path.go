// Straight-line path validation against the inner dead zone.
package arm

const (
	// PathSamples is the number of segments the straight path is broken
	// into; the validator inspects PathSamples+1 inclusive sample points.
	// Behavioral contract, not a tunable.
	PathSamples = 40

	// PathMargin is subtracted from the dead-zone radius before the
	// rejection comparison, giving a one-unit tolerance band around the
	// inner circle. Behavioral contract, not a tunable. With MinReach
	// below one unit the threshold goes non-positive and no sample can
	// ever be rejected; tests pin that boundary.
	PathMargin = 1.0
)

// PathClear reports whether the straight segment from 'from' to 'to' stays
// outside the forbidden inner circle. The segment is sampled at
// PathSamples+1 equally spaced points covering both endpoints; a sample
// closer to the origin than MinReach-PathMargin rejects the path.
//
// This is a discrete approximation: there is no guarantee against crossing
// the dead zone between samples. Acceptable for moves short relative to the
// arm scale.
func PathClear(cfg Config, from, to Point) bool {
	threshold := cfg.MinReach() - PathMargin
	for i := 0; i <= PathSamples; i++ {
		t := float64(i) / PathSamples
		p := Point{
			X: from.X + (to.X-from.X)*t,
			Y: from.Y + (to.Y-from.Y)*t,
		}
		if p.Dist() < threshold {
			return false
		}
	}
	return true
}
