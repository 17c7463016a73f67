// Package faults defines the error markers shared by the sweep components.
//
// Every failure that leaves a package is tagged with one of the exported
// sentinels through Wrap, so callers can classify it with errors.Is while the
// message still carries the stage, operation and underlying cause. The CLI
// uses the classification to decide how a failed run is recorded in the
// journal.
package faults
