// Package journal persists an audit trail of sweep runs in SQLite.
//
// Every run gets a row in runs when it starts and is finalized with its
// counters and terminal status when it ends; each move, duplicate removal and
// skipped conflict is appended to actions in the order it happened. The journal
// answers "what did rootsweep do to this tree" after the fact. It does not
// drive rollback or resume: a failed run leaves the tree as it was at the
// failure point and the journal only records how far it got.
//
// Schema changes bump schemaVersion in schema.go; users delete journal.db to
// adopt the new schema.
package journal
