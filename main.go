package main

import (
	"os"

	"github.com/rsinha/flashdown/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
