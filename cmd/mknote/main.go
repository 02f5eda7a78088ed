package main

import (
	"os"

	"github.com/aki/mknote/internal/cli/commands"
	"github.com/aki/mknote/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		ui.GlobalFormatter.OutputError(err)
		os.Exit(1)
	}
}
