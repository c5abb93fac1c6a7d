// Package main hosts the mediaid CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the identification HTTP service,
// performs one-shot identifications from the terminal, and reports request
// history and model token spend. It centralizes configuration resolution
// and structured logging setup so subcommands can focus on their own
// output.
package main
