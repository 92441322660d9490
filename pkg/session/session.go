// Package session owns the mutable state of one arm session: the fixed arm
// configuration and the current end-effector position. It drives moves
// through the planner, paces pose emission for consumers, and records every
// request in the move history.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"armhost/pkg/arm"
	"armhost/pkg/errors"
	"armhost/pkg/history"
	"armhost/pkg/log"
	"armhost/pkg/metrics"
)

// PoseSink consumes waypoint poses as a move plays out. Implementations
// must not block; slow consumers should drop frames.
type PoseSink interface {
	EmitPose(pose arm.Pose)
}

// Options configures optional session collaborators.
type Options struct {
	// FrameInterval paces pose emission. Zero disables pacing (every
	// pose is emitted immediately), which headless tests rely on.
	FrameInterval time.Duration

	// History, when set, records every move request and outcome.
	History *history.Store

	// Metrics, when set, receives move and position updates.
	Metrics *metrics.ArmMetrics
}

// Session is the owning state object for one arm. All mutation goes
// through Move; rejected or interrupted moves leave the state untouched.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	cfg     arm.Config
	current arm.Point

	frameInterval time.Duration
	sinks         []PoseSink
	store         *history.Store
	armMetrics    *metrics.ArmMetrics
	logger        *log.Logger

	movesCompleted int
	movesRejected  int
}

// New creates a session at the given starting position. The starting point
// must be solvable; a session cannot begin from an unreachable position.
func New(cfg arm.Config, start arm.Point, opts Options) (*Session, error) {
	if _, err := arm.Solve(cfg, start); err != nil {
		return nil, err
	}

	s := &Session{
		id:            uuid.New(),
		cfg:           cfg,
		current:       start,
		frameInterval: opts.FrameInterval,
		store:         opts.History,
		armMetrics:    opts.Metrics,
		logger:        log.GetLogger("session"),
	}

	if s.armMetrics != nil {
		s.armMetrics.PositionX.Set(nil, start.X)
		s.armMetrics.PositionY.Set(nil, start.Y)
	}

	s.logger.WithField("id", s.id).Info("session started at (%g, %g), reach [%g, %g]",
		start.X, start.Y, cfg.MinReach(), cfg.MaxReach())
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Config returns the fixed arm configuration.
func (s *Session) Config() arm.Config {
	return s.cfg
}

// Current returns the current end-effector position.
func (s *Session) Current() arm.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Pose returns the solved pose for the current position.
func (s *Session) Pose() arm.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	// The current position is always solvable: it was validated at
	// session start and every committed move re-validated it.
	pose, _ := arm.Solve(s.cfg, s.current)
	return pose
}

// AddSink registers a pose consumer.
func (s *Session) AddSink(sink PoseSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// RemoveSink unregisters a pose consumer.
func (s *Session) RemoveSink(sink PoseSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, registered := range s.sinks {
		if registered == sink {
			s.sinks = append(s.sinks[:i], s.sinks[i+1:]...)
			return
		}
	}
}

// Move drives a full move to target: validation, interpolation, paced pose
// emission, then an atomic position commit. On rejection the session state
// is unchanged and the rejection is returned. Cancelling the context stops
// emission and abandons the move without committing.
func (s *Session) Move(ctx context.Context, target arm.Point) error {
	s.mu.Lock()
	from := s.current
	s.mu.Unlock()

	poses, err := arm.PlanMove(s.cfg, from, target)
	if err != nil {
		s.rejectMove(from, target, err)
		return err
	}

	emitted, err := s.playPoses(ctx, poses)
	if err != nil {
		// Interrupted: no commit, no history row for a move that
		// neither completed nor was rejected by validation.
		s.logger.WithField("id", s.id).Warn("move to (%g, %g) interrupted after %d poses",
			target.X, target.Y, emitted)
		return err
	}

	s.mu.Lock()
	s.current = target
	s.movesCompleted++
	s.mu.Unlock()

	s.recordMove(from, target, history.OutcomeCompleted, emitted)
	if s.armMetrics != nil {
		s.armMetrics.MovesTotal.Inc(nil)
		s.armMetrics.PosesEmitted.Add(nil, uint64(emitted))
		s.armMetrics.WaypointsSkipped.Add(nil, uint64(arm.MoveSteps-len(poses)))
		s.armMetrics.PositionX.Set(nil, target.X)
		s.armMetrics.PositionY.Set(nil, target.Y)
	}

	s.logger.WithField("id", s.id).Debug("move to (%g, %g) completed, %d poses emitted",
		target.X, target.Y, emitted)
	return nil
}

// playPoses emits the planned poses, paced by the frame interval.
func (s *Session) playPoses(ctx context.Context, poses []arm.Pose) (int, error) {
	var ticker *time.Ticker
	if s.frameInterval > 0 {
		ticker = time.NewTicker(s.frameInterval)
		defer ticker.Stop()
	}

	emitted := 0
	for _, pose := range poses {
		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return emitted, errors.Wrap(ctx.Err(), errors.ErrRuntime, "move interrupted")
			}
		} else if ctx.Err() != nil {
			return emitted, errors.Wrap(ctx.Err(), errors.ErrRuntime, "move interrupted")
		}

		s.mu.Lock()
		sinks := make([]PoseSink, len(s.sinks))
		copy(sinks, s.sinks)
		s.mu.Unlock()

		for _, sink := range sinks {
			sink.EmitPose(pose)
		}
		emitted++
	}
	return emitted, nil
}

func (s *Session) rejectMove(from, target arm.Point, err error) {
	s.mu.Lock()
	s.movesRejected++
	s.mu.Unlock()

	outcome := history.OutcomeOutOfRange
	reason := "out_of_range"
	if errors.Is(err, errors.ErrPathBlocked) {
		outcome = history.OutcomePathBlocked
		reason = "path_blocked"
	}

	s.recordMove(from, target, outcome, 0)
	if s.armMetrics != nil {
		s.armMetrics.MovesRejected.Inc(metrics.Labels{"reason": reason})
	}

	s.logger.WithField("id", s.id).WithError(err).Warn("move to (%g, %g) rejected",
		target.X, target.Y)
}

func (s *Session) recordMove(from, to arm.Point, outcome string, emitted int) {
	if s.store == nil {
		return
	}
	err := s.store.Record(history.MoveRecord{
		SessionID:    s.id,
		From:         from,
		To:           to,
		Outcome:      outcome,
		PosesEmitted: emitted,
	})
	if err != nil {
		// History is advisory; a failed insert must not fail the move.
		s.logger.WithError(err).Warn("failed to record move")
	}
}

// Status returns the session state for status consumers.
func (s *Session) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]interface{}{
		"session_id":      s.id.String(),
		"link1_length":    s.cfg.L1,
		"link2_length":    s.cfg.L2,
		"left_handed":     s.cfg.LeftHanded,
		"min_reach":       s.cfg.MinReach(),
		"max_reach":       s.cfg.MaxReach(),
		"position_x":      s.current.X,
		"position_y":      s.current.Y,
		"moves_completed": s.movesCompleted,
		"moves_rejected":  s.movesRejected,
	}
}
