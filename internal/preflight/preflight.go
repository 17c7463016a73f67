package preflight

import (
	"rootsweep/internal/config"
	"rootsweep/internal/layout"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the checks that apply to cfg: the root directory, the state
// directory when the journal or lock needs it, and every layout target.
func RunAll(cfg *config.Config, table layout.Layout) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Root directory", cfg.Paths.RootDir)}

	if cfg.Sweep.Journal || cfg.Sweep.Lock {
		results = append(results, CheckStateDirectory(cfg.Paths.StateDir))
	}

	results = append(results, CheckLayout(cfg.Paths.RootDir, table, cfg.Sweep.CreateTargetDirs)...)
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return true
		}
	}
	return false
}
