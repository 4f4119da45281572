package main

import (
	"os"

	"github.com/avstrong/zenith/internal/cli"
)

func main() {
	var exitCode int

	if err := cli.Execute(); err != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}
