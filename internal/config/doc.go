// Package config loads, normalizes, and validates rootsweep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ROOTSWEEP_ROOT environment
// fallback. The Config type centralizes every knob the CLI needs: which
// directory to sweep, where the journal and lock live, how duplicates are
// treated, and optionally a replacement mapping table.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
