// Package logging assembles structured slog loggers and formatting helpers used
// across rootsweep.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so sweep code can tag log lines
// with the run ID and target directory automatically. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Log records are diagnostics. The per-file lines the sweep prints
// ("Moving X to Y") are user output and never go through this package.
package logging
