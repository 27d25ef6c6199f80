package main

import (
	"os"

	"github.com/booksmcp/booksmcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
