// Package config loads user preferences from the RC-format
// configuration file.
package config

import (
	"fmt"
	"strings"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Output string
	Format string
	Notify Notify
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Output: "bg.png",
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Output != "" {
		fmt.Fprintf(&sb, "output = %s\n", c.Output)
	}
	if c.Format != "" {
		fmt.Fprintf(&sb, "format = %s\n", c.Format)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}
