// Package reorganizer moves stray files from a web application's root into
// the subdirectories a layout assigns them to.
//
// A pass walks the layout in order. For every listed filename present as a
// regular file at the root it either removes the root copy, because the file
// already exists at its target path, or renames it into place. Each action
// writes one console line; the pass ends with a summary line carrying the
// counts. The first filesystem error halts the pass and leaves the remaining
// files where they were. There is no rollback.
//
// With the verify duplicate policy the root copy is only removed when its
// content matches the target byte for byte; differing copies are skipped and
// counted separately.
package reorganizer
