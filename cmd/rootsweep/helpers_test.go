package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rootsweep/internal/config"
	"rootsweep/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	root       string
}

// setupCLITestEnv writes a config file pointing at a fresh root and state
// directory with a small layout.
func setupCLITestEnv(t *testing.T, extra string) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	t.Setenv("HOME", filepath.Join(testsupport.BaseDir(cfg), "home"))
	t.Setenv("ROOTSWEEP_ROOT", "")

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	content := fmt.Sprintf(`[paths]
root_dir = %q
state_dir = %q

%s

[[layout]]
dir = "server/"
files = ["auth.ts", "db.ts"]

[[layout]]
dir = "client/"
files = ["index.html"]
`, cfg.Paths.RootDir, cfg.Paths.StateDir, extra)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{cfg: cfg, configPath: configPath, root: cfg.Paths.RootDir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
