// Move history store tests
//
// Copyright (C) 2026  Armhost Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package history

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"armhost/pkg/arm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	session := uuid.New()

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	recs := []MoveRecord{
		{SessionID: session, RequestedAt: base, From: arm.Point{X: 150, Y: 150}, To: arm.Point{X: 100, Y: 100}, Outcome: OutcomeOutOfRange},
		{SessionID: session, RequestedAt: base.Add(time.Second), From: arm.Point{X: 150, Y: 150}, To: arm.Point{X: 200, Y: 100}, Outcome: OutcomeCompleted, PosesEmitted: 40},
	}
	for _, rec := range recs {
		require.NoError(t, s.Record(rec))
	}

	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, OutcomeCompleted, got[0].Outcome)
	assert.Equal(t, 40, got[0].PosesEmitted)
	assert.Equal(t, arm.Point{X: 200, Y: 100}, got[0].To)
	assert.Equal(t, session, got[0].SessionID)
	assert.NotEqual(t, uuid.Nil, got[0].ID, "IDs assigned on insert")

	assert.Equal(t, OutcomeOutOfRange, got[1].Outcome)
}

func TestRecentHonorsLimit(t *testing.T) {
	s := openTestStore(t)
	session := uuid.New()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(MoveRecord{
			SessionID: session,
			To:        arm.Point{X: float64(i), Y: 0},
			Outcome:   OutcomeCompleted,
		}))
	}

	got, err := s.Recent(3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCountByOutcome(t *testing.T) {
	s := openTestStore(t)
	session := uuid.New()

	for _, outcome := range []string{
		OutcomeCompleted, OutcomeCompleted, OutcomePathBlocked,
	} {
		require.NoError(t, s.Record(MoveRecord{SessionID: session, Outcome: outcome}))
	}

	counts, err := s.CountByOutcome()
	require.NoError(t, err)
	assert.Equal(t, 2, counts[OutcomeCompleted])
	assert.Equal(t, 1, counts[OutcomePathBlocked])
	assert.Zero(t, counts[OutcomeOutOfRange])
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	assert.Error(t, s.Record(MoveRecord{SessionID: uuid.New(), Outcome: OutcomeCompleted}))
	_, err := s.Recent(1)
	assert.Error(t, err)
	assert.NoError(t, s.Close(), "double close is a no-op")
}
