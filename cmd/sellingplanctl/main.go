package main

import (
	"os"

	"github.com/jafarshop/sellingplans/cmd/sellingplanctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
