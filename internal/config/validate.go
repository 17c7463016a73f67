package config

import (
	"fmt"

	"rootsweep/internal/faults"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSweep(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateLayout(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSweep() error {
	switch c.Sweep.DuplicatePolicy {
	case PolicyDelete, PolicyVerify:
		return nil
	default:
		return faults.Wrap(
			faults.ErrConfiguration,
			"config",
			"validate",
			fmt.Sprintf("sweep.duplicate_policy must be %q or %q, got %q", PolicyDelete, PolicyVerify, c.Sweep.DuplicatePolicy),
			nil,
		)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return faults.Wrap(
			faults.ErrConfiguration,
			"config",
			"validate",
			fmt.Sprintf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format),
			nil,
		)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return faults.Wrap(
			faults.ErrConfiguration,
			"config",
			"validate",
			fmt.Sprintf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level),
			nil,
		)
	}
}

func (c *Config) validateLayout() error {
	if len(c.Layout) == 0 {
		return nil
	}
	if _, err := c.LayoutTable(); err != nil {
		return faults.Wrap(faults.ErrConfiguration, "config", "validate", "invalid [[layout]] table", err)
	}
	return nil
}
