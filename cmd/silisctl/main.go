package main

import (
	"os"

	"github.com/silis/backend/cmd/silisctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
