// Package main provides the kicadfab command.
package main

import (
	"os"

	"github.com/leapstack-labs/kicadfab/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
