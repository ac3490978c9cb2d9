package main

import (
	"os"

	"github.com/propertymind/mietermatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
