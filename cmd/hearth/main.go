package main

import (
	"os"

	"github.com/hearthkit/hearth/internal/commands"
	"github.com/hearthkit/hearth/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()
	rootCmd.AddCommand(commands.GenerateCmd())

	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
