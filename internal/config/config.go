package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"rootsweep/internal/layout"
)

//go:embed sample_config.toml
var sampleConfig string

// Duplicate policies.
const (
	// PolicyDelete removes the root copy whenever the target already exists.
	PolicyDelete = "delete"
	// PolicyVerify removes the root copy only when it is byte-identical to the
	// target; differing copies are left in place and reported.
	PolicyVerify = "verify"
)

// Paths contains directory configuration.
type Paths struct {
	RootDir  string `toml:"root_dir"`
	StateDir string `toml:"state_dir"`
}

// Sweep contains behaviour switches for the reorganizer.
type Sweep struct {
	DuplicatePolicy  string `toml:"duplicate_policy"`
	CreateTargetDirs bool   `toml:"create_target_dirs"`
	Journal          bool   `toml:"journal"`
	Lock             bool   `toml:"lock"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

// Config encapsulates all configuration values for rootsweep.
//
// Configuration sections:
//   - Paths: the directory to sweep and the state directory (journal, lock, log)
//   - Sweep: duplicate policy, directory creation, journal and lock toggles
//   - Logging: log format, level, and console mirroring
//   - Layout: optional replacement for the built-in mapping table
type Config struct {
	Paths   Paths          `toml:"paths"`
	Sweep   Sweep          `toml:"sweep"`
	Logging Logging        `toml:"logging"`
	Layout  []layout.Entry `toml:"layout"`
}

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the config at path, or the first of the per-user file and
// ./rootsweep.toml that exists when path is empty. A missing file is not an
// error: defaults are used and exists is false. The returned config is
// normalized and validated.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	resolved, exists, err = locate(path)
	if err != nil {
		return nil, "", false, err
	}

	loaded := Default()
	if exists {
		if err := decodeFile(resolved, &loaded); err != nil {
			return nil, "", false, err
		}
	}
	if err := loaded.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := loaded.Validate(); err != nil {
		return nil, "", false, err
	}
	return &loaded, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// locate resolves the config file. An explicit path is returned even when it
// does not exist; otherwise the candidates are tried in order and the
// per-user path is reported when none exists.
func locate(explicit string) (string, bool, error) {
	var candidates []string
	if explicit != "" {
		candidates = []string{explicit}
	} else {
		candidates = []string{defaultConfigPath, projectConfigName}
	}

	var first string
	for _, candidate := range candidates {
		path, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = path
		}
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return first, false, nil
}

// EnsureDirectories creates the state directory when anything needs it.
func (c *Config) EnsureDirectories() error {
	if !c.Sweep.Journal && !c.Sweep.Lock {
		return nil
	}
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

// JournalPath returns the SQLite journal location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, journalFileName)
}

// LockPath returns the run lock location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, lockFileName)
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, logFileName)
}

// LayoutTable returns the configured mapping table, falling back to the
// built-in one when the config does not define [[layout]] entries.
func (c *Config) LayoutTable() (layout.Layout, error) {
	if len(c.Layout) == 0 {
		return layout.Default(), nil
	}
	return layout.New(c.Layout)
}

func expandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}

// ExpandPath resolves "~" and makes p absolute. Empty stays empty.
func ExpandPath(p string) (string, error) {
	return expandPath(p)
}

// CreateSample writes the commented sample config to path, creating parent
// directories and replacing any existing file.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
