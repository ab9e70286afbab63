// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Terminal detection for choosing between interactive and plain prompts
//   - Environment overrides that force non-interactive mode
package utils
