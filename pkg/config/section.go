package config

import (
	"strconv"
	"strings"

	"armhost/pkg/errors"
)

// Section provides typed access to one config section.
type Section struct {
	name    string
	options map[string]string
}

func newSection(name string, options map[string]string) *Section {
	opts := make(map[string]string, len(options))
	for k, v := range options {
		opts[strings.ToLower(k)] = v
	}
	return &Section{name: name, options: opts}
}

// GetName returns the section name.
func (s *Section) GetName() string {
	return s.name
}

// HasOption checks if an option exists in this section.
func (s *Section) HasOption(option string) bool {
	_, ok := s.options[strings.ToLower(option)]
	return ok
}

// Get returns a string option value. If a fallback is provided and the
// option doesn't exist, the fallback is returned; with no fallback a
// missing option is an error.
func (s *Section) Get(option string, fallback ...string) (string, error) {
	if v, ok := s.options[strings.ToLower(option)]; ok {
		return v, nil
	}
	if len(fallback) > 0 {
		return fallback[0], nil
	}
	return "", errors.ConfigOptionError(s.name, option)
}

// GetFloat returns a float option value.
func (s *Section) GetFloat(option string, fallback ...float64) (float64, error) {
	v, ok := s.options[strings.ToLower(option)]
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return 0, errors.ConfigOptionError(s.name, option)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.ConfigTypeError(s.name, option, v, "float", err)
	}
	return f, nil
}

// GetInt returns an integer option value.
func (s *Section) GetInt(option string, fallback ...int) (int, error) {
	v, ok := s.options[strings.ToLower(option)]
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return 0, errors.ConfigOptionError(s.name, option)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.ConfigTypeError(s.name, option, v, "int", err)
	}
	return n, nil
}

// GetBool returns a boolean option value. Accepts true/false, yes/no, on/off
// and 1/0.
func (s *Section) GetBool(option string, fallback ...bool) (bool, error) {
	v, ok := s.options[strings.ToLower(option)]
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return false, errors.ConfigOptionError(s.name, option)
	}
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, errors.ConfigTypeError(s.name, option, v, "bool", nil)
}
