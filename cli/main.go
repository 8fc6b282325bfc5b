package main

import (
	"os"

	"github.com/precinct-systems/precinct-stack/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
