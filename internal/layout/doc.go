// Package layout owns the mapping from target directories to the filenames that
// belong in them.
//
// A Layout is an ordered, immutable list of entries. Default reproduces the
// table the sweep was written for, entry for entry and file for file, because
// the directory and file names are the contract with the tree being cleaned.
// Alternative tables (from config or tests) go through New, which copies,
// normalizes and validates them so the reorganizer never sees an unsafe path
// or a filename claimed by two directories.
package layout
