// Command plog checks, explains and tries out plog filter patterns.
package main

import (
	"os"

	"github.com/philipp01105/plog/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
