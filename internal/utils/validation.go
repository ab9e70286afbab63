package utils

import (
	"os"
)

// Environment variables that force plain, non-interactive prompts
const (
	NonInteractiveEnv    = "GITMERGE_NON_INTERACTIVE"
	TestNoInteractiveEnv = "GITMERGE_TEST_NO_INTERACTIVE"
)

// IsInteractive checks if input is an interactive terminal
func IsInteractive(input *os.File) bool {
	// Allow forcing non-interactive mode via environment variable
	if os.Getenv(NonInteractiveEnv) != "" || os.Getenv(TestNoInteractiveEnv) != "" {
		return false
	}
	return IsTerminal(input)
}
