package main

import (
	"os"

	"github.com/schemaforge/schemaforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
