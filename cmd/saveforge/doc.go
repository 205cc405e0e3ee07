// Package main hosts the saveforge CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into edit
// sessions against a save document: reading and writing inventory counters,
// converting containers through the configured uesave binary, maintaining the
// field catalog, and inspecting backups and the operation journal. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
package main
