// Package preflight provides readiness checks for the directories a sweep
// touches.
//
// The CLI "rootsweep check" command runs RunAll and renders the results as a
// table. The checks are read-only: they report missing or unwritable target
// directories before a run would halt on them, and never create anything.
package preflight
