package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"rootsweep/internal/config"
	"rootsweep/internal/layout"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with a fresh root and state directory per test.
// The root directory exists; the state directory is created lazily by the
// code under test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RootDir = filepath.Join(base, "root")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	if err := os.MkdirAll(cfgVal.Paths.RootDir, 0o755); err != nil {
		t.Fatalf("mkdir root: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPolicy sets the duplicate policy.
func WithPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sweep.DuplicatePolicy = policy
	}
}

// WithCreateTargetDirs toggles creation of missing target directories.
func WithCreateTargetDirs(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sweep.CreateTargetDirs = enabled
	}
}

// WithoutState disables the journal and the run lock.
func WithoutState() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sweep.Journal = false
		b.cfg.Sweep.Lock = false
	}
}

// WithLayout replaces the built-in mapping table.
func WithLayout(entries ...layout.Entry) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Layout = entries
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
