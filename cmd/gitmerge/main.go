package main

import (
	"fmt"
	"os"

	"gitmerge.dev/gitmerge/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		// The root command silences cobra; only errors it did not print itself are shown here
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "❌", err)
		}
		os.Exit(1)
	}
}
