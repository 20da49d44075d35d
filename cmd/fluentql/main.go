// Package main provides the fluentql command-line interface.
package main

import (
	"os"

	"github.com/leapstack-labs/fluentql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
