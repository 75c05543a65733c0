package main

import (
	"os"

	"github.com/Konsultn-Engineering/querykit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
