// Package config parses armhost's ini-style configuration files: bracketed
// section headers, colon-separated options, and '#' comments.
package config

import (
	"bufio"
	"os"
	"strings"

	"armhost/pkg/errors"
)

// Config provides access to a parsed configuration file.
type Config struct {
	sections map[string]*Section
	order    []string // Maintains section order
}

// New creates a new empty Config.
func New() *Config {
	return &Config{
		sections: make(map[string]*Section),
	}
}

// Load reads a configuration file and returns a Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValidation, "unable to open config file")
	}
	defer f.Close()

	c := New()
	if err := c.parse(bufio.NewScanner(f)); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadString parses configuration data from a string.
func LoadString(data string) (*Config, error) {
	c := New()
	if err := c.parse(bufio.NewScanner(strings.NewReader(data))); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) parse(scanner *bufio.Scanner) error {
	var currentSection string
	currentOptions := make(map[string]string)

	flush := func() {
		if currentSection != "" {
			c.addSection(currentSection, currentOptions)
		}
		currentOptions = make(map[string]string)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		// Strip comments
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}

		// Section header
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			header := strings.TrimSpace(line[1 : len(line)-1])
			if header == "" {
				return errors.New(errors.ErrConfigValidation, "empty section header")
			}
			currentSection = strings.ToLower(header)
			continue
		}

		// Option line: "key: value" or "key = value"
		sep := strings.IndexAny(line, ":=")
		if sep < 0 {
			return errors.New(errors.ErrConfigValidation, "malformed line: "+line)
		}
		key := strings.ToLower(strings.TrimSpace(line[:sep]))
		value := strings.TrimSpace(line[sep+1:])
		if key == "" {
			return errors.New(errors.ErrConfigValidation, "empty option name: "+line)
		}
		if currentSection == "" {
			return errors.New(errors.ErrConfigValidation, "option outside any section: "+line)
		}
		currentOptions[key] = value
	}
	flush()

	return scanner.Err()
}

func (c *Config) addSection(name string, options map[string]string) {
	if existing, ok := c.sections[name]; ok {
		// Later definitions extend and override earlier ones.
		for k, v := range options {
			existing.options[k] = v
		}
		return
	}
	c.sections[name] = newSection(name, options)
	c.order = append(c.order, name)
}

// HasSection checks if a section exists.
func (c *Config) HasSection(name string) bool {
	_, ok := c.sections[strings.ToLower(name)]
	return ok
}

// GetSection returns a section by name.
func (c *Config) GetSection(name string) (*Section, error) {
	s, ok := c.sections[strings.ToLower(name)]
	if !ok {
		return nil, errors.ConfigSectionError(name)
	}
	return s, nil
}

// SectionNames returns the section names in file order.
func (c *Config) SectionNames() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}
