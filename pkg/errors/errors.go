// Unified error handling for the armhost project
//
// Copyright (C) 2026  Armhost Authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	"fmt"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// Session setup errors
	ErrInvalidLength ErrorCode = "INVALID_LENGTH"

	// Kinematics errors
	ErrUnreachable ErrorCode = "UNREACHABLE"
	ErrOutOfRange  ErrorCode = "OUT_OF_RANGE"
	ErrPathBlocked ErrorCode = "PATH_BLOCKED"

	// Command boundary errors
	ErrMalformedInput ErrorCode = "MALFORMED_INPUT"
	ErrUnknownCommand ErrorCode = "UNKNOWN_COMMAND"

	// Configuration errors
	ErrConfigSection    ErrorCode = "CONFIG_SECTION"
	ErrConfigOption     ErrorCode = "CONFIG_OPTION"
	ErrConfigType       ErrorCode = "CONFIG_TYPE"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Infrastructure errors
	ErrHistory ErrorCode = "HISTORY"
	ErrRuntime ErrorCode = "RUNTIME"
)

// ArmError is the unified error type for the host system. Every failure it
// describes is a recoverable outcome: the driving loop reports it and keeps
// accepting requests.
type ArmError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Section is the config section or component context
	Section string

	// Option is the config option name (if applicable)
	Option string

	// Err wraps the underlying error
	Err error

	// Context provides additional context
	Context map[string]interface{}
}

// Error implements the error interface
func (e *ArmError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Option, e.Message)
	}
	if e.Section != "" {
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Section, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ArmError) Unwrap() error {
	return e.Err
}

// SetSection sets the context section
func (e *ArmError) SetSection(section string) *ArmError {
	e.Section = section
	return e
}

// SetOption sets the config option
func (e *ArmError) SetOption(option string) *ArmError {
	e.Option = option
	return e
}

// SetContext adds additional context
func (e *ArmError) SetContext(key string, value interface{}) *ArmError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new ArmError
func New(code ErrorCode, message string) *ArmError {
	return &ArmError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode, message string) *ArmError {
	return &ArmError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Session setup errors

// InvalidLengthError creates an error for a non-positive link length
func InvalidLengthError(name string, value float64) *ArmError {
	return New(ErrInvalidLength, fmt.Sprintf("link length %s must be positive, got %g", name, value)).
		SetOption(name)
}

// Kinematics errors

// UnreachableError creates an error for a target outside the reachable annulus
func UnreachableError(x, y, dist, minReach, maxReach float64) *ArmError {
	return New(ErrUnreachable, fmt.Sprintf("target (%.3f, %.3f) at distance %.3f outside reach [%.3f, %.3f]", x, y, dist, minReach, maxReach)).
		SetContext("dist", dist)
}

// OutOfRangeError creates an error for a rejected move destination
func OutOfRangeError(x, y float64) *ArmError {
	return New(ErrOutOfRange, fmt.Sprintf("move destination (%.3f, %.3f) is out of range", x, y))
}

// PathBlockedError creates an error for a path crossing the dead zone
func PathBlockedError(fromX, fromY, toX, toY float64) *ArmError {
	return New(ErrPathBlocked, fmt.Sprintf("path (%.3f, %.3f) -> (%.3f, %.3f) crosses the forbidden zone", fromX, fromY, toX, toY))
}

// Command boundary errors

// MalformedInputError creates an error for unparseable command input
func MalformedInputError(input string, reason string) *ArmError {
	return New(ErrMalformedInput, fmt.Sprintf("cannot parse %q: %s", input, reason))
}

// UnknownCommandError creates an error for an unrecognized command verb
func UnknownCommandError(verb string) *ArmError {
	return New(ErrUnknownCommand, fmt.Sprintf("unknown command: %s", verb))
}

// Config errors

// ConfigSectionError creates an error for missing config section
func ConfigSectionError(section string) *ArmError {
	return New(ErrConfigSection, fmt.Sprintf("section '%s' not found", section)).
		SetSection(section)
}

// ConfigOptionError creates an error for missing config option
func ConfigOptionError(section, option string) *ArmError {
	return New(ErrConfigOption, fmt.Sprintf("option '%s' not found in section '%s'", option, section)).
		SetSection(section).
		SetOption(option)
}

// ConfigTypeError creates an error for config type conversion failure
func ConfigTypeError(section, option, value, targetType string, err error) *ArmError {
	return Wrap(err, ErrConfigType, fmt.Sprintf("option '%s' in section '%s': failed to parse '%s' as %s", option, section, value, targetType)).
		SetSection(section).
		SetOption(option)
}

// ConfigValidationError creates an error for config validation failure
func ConfigValidationError(section, option, reason string) *ArmError {
	return New(ErrConfigValidation, fmt.Sprintf("option '%s' in section '%s': %s", option, section, reason)).
		SetSection(section).
		SetOption(option)
}

// Infrastructure errors

// HistoryError creates an error for a move history store failure
func HistoryError(operation string, err error) *ArmError {
	return Wrap(err, ErrHistory, fmt.Sprintf("history %s failed", operation))
}

// RuntimeError creates a general runtime error
func RuntimeError(message string) *ArmError {
	return New(ErrRuntime, message)
}

// Is checks if error matches given error code
func Is(err error, code ErrorCode) bool {
	if armErr, ok := err.(*ArmError); ok {
		return armErr.Code == code
	}
	return false
}

// IsRejection reports whether the error is one of the expected move
// rejections that leave session state untouched.
func IsRejection(err error) bool {
	return Is(err, ErrUnreachable) ||
		Is(err, ErrOutOfRange) ||
		Is(err, ErrPathBlocked)
}

// IsConfig checks if error is a config error
func IsConfig(err error) bool {
	return Is(err, ErrConfigSection) ||
		Is(err, ErrConfigOption) ||
		Is(err, ErrConfigType) ||
		Is(err, ErrConfigValidation)
}
