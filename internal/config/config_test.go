package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rootsweep/internal/config"
	"rootsweep/internal/faults"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ROOTSWEEP_ROOT", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "rootsweep")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cfg.Paths.RootDir != cwd {
		t.Fatalf("expected root dir to default to working directory %q, got %q", cwd, cfg.Paths.RootDir)
	}
	if cfg.Sweep.DuplicatePolicy != config.PolicyDelete {
		t.Fatalf("expected delete policy by default, got %q", cfg.Sweep.DuplicatePolicy)
	}
	if cfg.Sweep.CreateTargetDirs {
		t.Fatal("expected create_target_dirs disabled by default")
	}
	if !cfg.Sweep.Journal || !cfg.Sweep.Lock {
		t.Fatal("expected journal and lock enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.JournalPath() != filepath.Join(wantState, "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.JournalPath())
	}
	if cfg.LockPath() != filepath.Join(wantState, "rootsweep.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}

	table, err := cfg.LayoutTable()
	if err != nil {
		t.Fatalf("LayoutTable: %v", err)
	}
	if table.Len() != 10 {
		t.Fatalf("expected built-in layout with 10 entries, got %d", table.Len())
	}
}

func TestLoadUsesRootEnvFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	t.Setenv("ROOTSWEEP_ROOT", root)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.RootDir != root {
		t.Fatalf("expected root from env %q, got %q", root, cfg.Paths.RootDir)
	}
}

func TestLoadCustomConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROOTSWEEP_ROOT", "")
	dir := t.TempDir()
	root := filepath.Join(dir, "webapp")
	state := filepath.Join(dir, "state")
	configPath := filepath.Join(dir, "config.toml")

	content := `[paths]
root_dir = "` + root + `"
state_dir = "` + state + `"

[sweep]
duplicate_policy = " Verify "
create_target_dirs = true
journal = false

[logging]
format = "JSON"
level = "debug"

[[layout]]
dir = "server/"
files = ["auth.ts", "db.ts"]

[[layout]]
dir = "client/"
files = ["index.html"]
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config to be found at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.RootDir != root || cfg.Paths.StateDir != state {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
	if cfg.Sweep.DuplicatePolicy != config.PolicyVerify {
		t.Fatalf("expected normalized verify policy, got %q", cfg.Sweep.DuplicatePolicy)
	}
	if !cfg.Sweep.CreateTargetDirs || cfg.Sweep.Journal {
		t.Fatalf("unexpected sweep section: %+v", cfg.Sweep)
	}
	if !cfg.Sweep.Lock {
		t.Fatal("expected lock to keep its default when omitted")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section: %+v", cfg.Logging)
	}

	table, err := cfg.LayoutTable()
	if err != nil {
		t.Fatalf("LayoutTable: %v", err)
	}
	if table.Len() != 2 || table.FileCount() != 3 {
		t.Fatalf("unexpected layout: %d entries, %d files", table.Len(), table.FileCount())
	}
	if dir, ok := table.Lookup("index.html"); !ok || dir != "client/" {
		t.Fatalf("unexpected lookup result: %q %v", dir, ok)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]string{
		"policy":  "[sweep]\nduplicate_policy = \"merge\"\n",
		"level":   "[logging]\nlevel = \"trace\"\n",
		"format":  "[logging]\nformat = \"xml\"\n",
		"layout":  "[[layout]]\ndir = \"../escape/\"\nfiles = [\"a.ts\"]\n",
		"unknown": "[sweep]\ndry_run = true\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected Load to fail")
			}
		})
	}
}

func TestValidateMarksConfigurationErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Sweep.DuplicatePolicy = "merge"
	cfg.Logging.Level = "info"
	err := cfg.Validate()
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "sweep.duplicate_policy") {
		t.Fatalf("expected key name in error, got %q", err.Error())
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected key name in error, got %q", err.Error())
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROOTSWEEP_ROOT", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Sweep.DuplicatePolicy != config.PolicyDelete {
		t.Fatalf("unexpected sample policy: %q", cfg.Sweep.DuplicatePolicy)
	}
	if len(cfg.Layout) != 0 {
		t.Fatalf("expected sample to keep the built-in layout, got %d entries", len(cfg.Layout))
	}
}

func TestExpandPathHandlesTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/sweep")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "sweep") {
		t.Fatalf("unexpected expansion: %q", got)
	}
	if empty, err := config.ExpandPath(""); err != nil || empty != "" {
		t.Fatalf("expected empty path to pass through, got %q %v", empty, err)
	}
}

func TestEnsureDirectoriesCreatesStateDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.StateDir); err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}

	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "unused")
	cfg.Sweep.Journal = false
	cfg.Sweep.Lock = false
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if _, err := os.Stat(cfg.Paths.StateDir); !os.IsNotExist(err) {
		t.Fatalf("expected state dir to be left alone, got %v", err)
	}
}
