package main

import (
	"os"

	"github.com/clusterview-dev/clusterview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
