package main

import (
	"os"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"iconica",
		"Assign and manage icons for vault files and folders",
	)

	rootCmd.AddCommand(
		cmd.NewSetCmd(),
		cmd.NewRemoveCmd(),
		cmd.NewListCmd(),
		cmd.NewLibraryCmd(),
		cmd.NewSearchCmd(),
		cmd.NewRandomCmd(),
		cmd.NewEmojiCmd(),
		cmd.NewInlineCmd(),
		cmd.NewIngestCmd(),
		cmd.NewWatchCmd(),
		cmd.NewVersionCmd(),
	)

	cli.SetStyledHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
