package main

import (
	"os"

	"construction-takeoff/cmd/cli/cmd"
	"construction-takeoff/internal/logging"
)

func main() {
	defer logging.Sync()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
