// Package fileutil holds the file-level primitives the reorganizer builds on:
// content hashing for duplicate verification and a rename that falls back to a
// verified copy when source and target live on different devices.
//
// Everything operates on a billy.Filesystem so callers can root the helpers at
// the directory being swept.
package fileutil
