// Package tui holds the terminal presentation helpers used by the CLI.
package tui
