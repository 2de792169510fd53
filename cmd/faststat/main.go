// Package main provides the entry point for the faststat CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/faststat/cmd/faststat/commands"
	"github.com/Sumatoshi-tech/faststat/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
