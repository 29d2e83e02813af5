// Package main - CLI entry point
package main

import (
	"os"

	"compliance-cost/cmd/cli/cmd"
	"compliance-cost/internal/logging"
)

func main() {
	defer logging.Sync()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
