package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/pkg/emoji"
)

// NewEmojiCmd creates the `emoji` command
func NewEmojiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emoji [query]",
		Short: "Search the bundled emoji index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := emoji.Default()

			random, _ := cmd.Flags().GetBool("random")
			if random {
				e, ok := idx.Random()
				if !ok {
					return fmt.Errorf("emoji index is empty")
				}
				fmt.Printf("%s  %s\n", e.Character, e.Label)
				return nil
			}

			var entries []emoji.Entry
			if len(args) == 0 {
				entries = idx.All()
			} else {
				entries = idx.Search(args[0])
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(entries)
			}
			if len(entries) == 0 {
				fmt.Println("No emoji found.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  :%s:  %s\n", e.Character, emoji.NormalizeShortcode(e.Label), e.Label)
			}
			return nil
		},
	}
	cmd.Flags().Bool("random", false, "Print one random emoji")
	return cmd
}
