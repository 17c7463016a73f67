package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"rootsweep/internal/config"
	"rootsweep/internal/faults"
	"rootsweep/internal/journal"
	"rootsweep/internal/layout"
	"rootsweep/internal/logging"
)

type commandContext struct {
	configFlag *string
	rootFlag   *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, rootFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		rootFlag:   rootFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if c.rootFlag != nil && strings.TrimSpace(*c.rootFlag) != "" {
			root, err := config.ExpandPath(strings.TrimSpace(*c.rootFlag))
			if err != nil {
				c.configErr = fmt.Errorf("resolve --root: %w", err)
				return
			}
			cfg.Paths.RootDir = root
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) verboseEnabled() bool {
	return c.verbose != nil && *c.verbose
}

func (c *commandContext) layoutTable() (layout.Layout, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return layout.Layout{}, err
	}
	return cfg.LayoutTable()
}

// ensureLogger builds the logger once; callers that mutate state call
// cfg.EnsureDirectories first so the log file has somewhere to go.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, c.verboseEnabled())
	})
	return c.logger, c.loggerErr
}

// requireRoot verifies the sweep root is an existing directory.
func (c *commandContext) requireRoot() (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(cfg.Paths.RootDir)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "config", "root directory", cfg.Paths.RootDir, err)
	}
	if !info.IsDir() {
		return nil, faults.Wrap(faults.ErrConfiguration, "config", "root directory", cfg.Paths.RootDir+" is not a directory", nil)
	}
	return cfg, nil
}

func (c *commandContext) openJournal() (*journal.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Sweep.Journal {
		return nil, faults.Wrap(faults.ErrConfiguration, "config", "journal", "journal is disabled (sweep.journal = false)", nil)
	}
	return journal.Open(cfg.JournalPath())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
