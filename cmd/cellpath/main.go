package main

import (
	"os"

	"github.com/tsawler/cellpath/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
