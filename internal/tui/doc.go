// Package tui provides the terminal user interface for gitmerge.
//
// It handles:
//   - The yes/no confirmation gate (survey on a terminal, a line reader otherwise)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
package tui
