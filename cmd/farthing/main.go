package main

import (
	"os"

	"github.com/farthing-dev/farthing/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
