package config

import (
	"time"

	"armhost/pkg/arm"
	"armhost/pkg/errors"
)

// Defaults applied when the corresponding option or section is absent.
const (
	DefaultFrameIntervalMS = 40
	DefaultStartX          = 150
	DefaultStartY          = 150
	DefaultListenAddr      = ":7460"
	DefaultMetricsAddr     = ":9460"
	DefaultHistoryPath     = "armhost.db"
)

// FileConfig is the fully parsed armhost configuration.
type FileConfig struct {
	// Arm geometry and IK branch, from [arm].
	Arm arm.Config

	// Start is the starting end-effector position, from [session].
	Start arm.Point

	// FrameInterval paces pose emission during a move.
	FrameInterval time.Duration

	// ListenAddr is the status API address, from [api].
	ListenAddr string

	// MetricsAddr is the Prometheus endpoint address, from [api].
	MetricsAddr string

	// HistoryPath is the move history database path, from [history].
	HistoryPath string
}

// ParseFile loads and validates a full armhost config file.
func ParseFile(path string) (*FileConfig, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return buildFileConfig(c)
}

// ParseString parses a full armhost config from a string.
func ParseString(data string) (*FileConfig, error) {
	c, err := LoadString(data)
	if err != nil {
		return nil, err
	}
	return buildFileConfig(c)
}

func buildFileConfig(c *Config) (*FileConfig, error) {
	armSec, err := c.GetSection("arm")
	if err != nil {
		return nil, err
	}

	l1, err := armSec.GetFloat("link1_length")
	if err != nil {
		return nil, err
	}
	l2, err := armSec.GetFloat("link2_length")
	if err != nil {
		return nil, err
	}
	leftHanded, err := armSec.GetBool("left_handed", false)
	if err != nil {
		return nil, err
	}

	armCfg, err := arm.NewConfig(l1, l2, leftHanded)
	if err != nil {
		return nil, err
	}

	fc := &FileConfig{
		Arm:           armCfg,
		Start:         arm.Point{X: DefaultStartX, Y: DefaultStartY},
		FrameInterval: DefaultFrameIntervalMS * time.Millisecond,
		ListenAddr:    DefaultListenAddr,
		MetricsAddr:   DefaultMetricsAddr,
		HistoryPath:   DefaultHistoryPath,
	}

	if c.HasSection("session") {
		sec, _ := c.GetSection("session")
		if fc.Start.X, err = sec.GetFloat("start_x", DefaultStartX); err != nil {
			return nil, err
		}
		if fc.Start.Y, err = sec.GetFloat("start_y", DefaultStartY); err != nil {
			return nil, err
		}
		ms, err := sec.GetInt("frame_interval_ms", DefaultFrameIntervalMS)
		if err != nil {
			return nil, err
		}
		if ms < 0 {
			return nil, errors.ConfigValidationError("session", "frame_interval_ms", "must not be negative")
		}
		fc.FrameInterval = time.Duration(ms) * time.Millisecond
	}

	if c.HasSection("api") {
		sec, _ := c.GetSection("api")
		if fc.ListenAddr, err = sec.Get("listen", DefaultListenAddr); err != nil {
			return nil, err
		}
		if fc.MetricsAddr, err = sec.Get("metrics_listen", DefaultMetricsAddr); err != nil {
			return nil, err
		}
	}

	if c.HasSection("history") {
		sec, _ := c.GetSection("history")
		if fc.HistoryPath, err = sec.Get("path", DefaultHistoryPath); err != nil {
			return nil, err
		}
	}

	// The starting point must be solvable; a session cannot begin from an
	// unreachable position.
	if _, err := arm.Solve(fc.Arm, fc.Start); err != nil {
		return nil, errors.ConfigValidationError("session", "start_x",
			"starting point is not reachable")
	}

	return fc, nil
}
