package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSweep()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.RootDir = strings.TrimSpace(c.Paths.RootDir)
	if c.Paths.RootDir == "" {
		if value, ok := os.LookupEnv("ROOTSWEEP_ROOT"); ok && strings.TrimSpace(value) != "" {
			c.Paths.RootDir = strings.TrimSpace(value)
		} else {
			c.Paths.RootDir = defaultRootDir
		}
	}
	if c.Paths.RootDir, err = expandPath(c.Paths.RootDir); err != nil {
		return fmt.Errorf("paths.root_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSweep() {
	c.Sweep.DuplicatePolicy = strings.ToLower(strings.TrimSpace(c.Sweep.DuplicatePolicy))
	if c.Sweep.DuplicatePolicy == "" {
		c.Sweep.DuplicatePolicy = defaultDuplicatePolicy
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
