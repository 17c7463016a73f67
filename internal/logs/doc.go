// Package logs reads the rootsweep log file for the `rootsweep logs` command.
//
// Last returns the final lines of the file together with the byte offset at
// which it stopped; Follow polls from an offset and hands each newly appended
// line to a callback until its context ends. Both work on a missing file so
// the command is usable before the first sweep has written anything.
package logs
