// Package main hosts the rootsweep CLI entrypoint and command graph.
//
// Running rootsweep without arguments sweeps the working directory (or the
// configured root) the same way the run subcommand does. The other commands
// inspect instead of mutate: plan previews the actions, check verifies the
// target directories, layout prints the mapping table, and history reads the
// journal. Configuration resolution and logger setup live in the command
// context so subcommands only deal with presentation.
package main
