package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GITMERGE_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gitmerge/logs/gitmerge.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GITMERGE_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "gitmerge.log"
	}

	return filepath.Join(homeDir, ".gitmerge", "logs", "gitmerge.log")
}
