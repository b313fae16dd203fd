package main

import (
	"os"

	"github.com/runlogd/runlog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
