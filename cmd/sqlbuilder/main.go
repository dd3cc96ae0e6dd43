// Package main provides the sqlbuilder command.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlbuilder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
