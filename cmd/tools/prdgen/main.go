package main

import (
	"os"

	"prd-advisors/cmd/tools/prdgen/commands"
)

var version = "dev"

func main() {
	commands.SetVersion(version)

	// errors are already printed in color by the commands
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
