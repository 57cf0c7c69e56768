package main

import (
	"os"

	"github.com/klarbok/klarbok/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
