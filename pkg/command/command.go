// Package command parses the line-oriented control language of the armhost
// shell. It is the boundary where malformed user input becomes a typed
// error instead of an exception: the driving loop reports it and carries on.
package command

import (
	"strconv"
	"strings"

	"armhost/pkg/arm"
	"armhost/pkg/errors"
)

// Kind identifies a parsed command.
type Kind int

const (
	// KindMove requests a move to a target point.
	KindMove Kind = iota

	// KindStatus requests the current session status.
	KindStatus

	// KindQuit ends the session.
	KindQuit
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindStatus:
		return "status"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one parsed shell command.
type Command struct {
	Kind   Kind
	Target arm.Point // Set for KindMove
}

// Parse parses a single input line into a Command.
//
// Accepted forms:
//
//	move X,Y    request a move (goto is an alias)
//	X,Y         bare coordinates, treated as a move
//	status      report session state
//	quit, exit  end the session
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, errors.MalformedInputError(line, "empty command")
	}

	verb := line
	rest := ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		verb = line[:i]
		rest = strings.TrimSpace(line[i+1:])
	}

	switch strings.ToLower(verb) {
	case "move", "goto":
		target, err := ParseTarget(rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindMove, Target: target}, nil

	case "status":
		return Command{Kind: KindStatus}, nil

	case "quit", "exit":
		return Command{Kind: KindQuit}, nil
	}

	// Bare "X,Y" is a move, matching the original prompt format.
	if strings.ContainsRune(line, ',') {
		target, err := ParseTarget(line)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindMove, Target: target}, nil
	}

	return Command{}, errors.UnknownCommandError(verb)
}

// ParseTarget parses an "X,Y" coordinate pair.
func ParseTarget(s string) (arm.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return arm.Point{}, errors.MalformedInputError(s, "expected two comma-separated numbers, e.g. 150,150")
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return arm.Point{}, errors.MalformedInputError(s, "invalid X coordinate")
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return arm.Point{}, errors.MalformedInputError(s, "invalid Y coordinate")
	}

	return arm.Point{X: x, Y: y}, nil
}
