// Path validator tests
//
// Copyright (C) 2026  Armhost Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package arm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathClearZeroLengthMove(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	p := Point{X: 150, Y: 150}
	assert.True(t, PathClear(cfg, p, p))
}

func TestPathClearStaysOutsideDeadZone(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	// A chord well outside the 50-unit inner circle.
	assert.True(t, PathClear(cfg, Point{X: 150, Y: 150}, Point{X: 200, Y: 100}))
}

func TestPathBlockedThroughDeadZone(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	// Straight through the origin: samples land well inside MinReach-1.
	assert.False(t, PathClear(cfg, Point{X: 150, Y: 0}, Point{X: -150, Y: 0}))
}

func TestPathMarginTolerance(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	// A chord grazing the dead zone at distance MinReach-0.5: inside the
	// inner circle but within the one-unit margin, so still clear.
	graze := cfg.MinReach() - 0.5
	assert.True(t, PathClear(cfg, Point{X: 300, Y: graze}, Point{X: -300, Y: graze}))

	// One unit deeper crosses the margin.
	blocked := cfg.MinReach() - 1.5
	assert.False(t, PathClear(cfg, Point{X: 300, Y: blocked}, Point{X: -300, Y: blocked}))
}

func TestPathClearEqualLinksQuirk(t *testing.T) {
	// With equal links MinReach is zero, so the rejection threshold is
	// MinReach-1 = -1 and no sample distance can ever fall below it: every
	// straight path is reported clear, even one through the origin. This
	// mirrors the original behavior and is pinned deliberately.
	cfg := mustConfig(t, 100, 100, false)
	assert.True(t, PathClear(cfg, Point{X: 150, Y: 0}, Point{X: -150, Y: 0}))
}

func TestPathSamplesCoverEndpoints(t *testing.T) {
	cfg := mustConfig(t, 200, 150, false)
	// An endpoint deep inside the dead zone must reject even when the
	// rest of the segment is clear: the sampling includes t=0 and t=1.
	inside := Point{X: 5, Y: 0}
	outside := Point{X: 300, Y: 0}
	assert.False(t, PathClear(cfg, inside, outside))
	assert.False(t, PathClear(cfg, outside, inside))
}
