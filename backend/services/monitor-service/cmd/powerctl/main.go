// Package main is the entry point for the powerctl CLI.
package main

import (
	"os"

	"powermonitor/backend/services/monitor-service/cmd/powerctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
