// Package main is the entry point for the wr CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/winereview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
