package main

import (
	"fmt"
	"os"

	"backoffice/internal/cli"
)

func main() {
	if err := cli.BuildCLI(cli.FromEnv).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
