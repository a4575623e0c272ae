package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/pkg/remote"
)

// NewSearchCmd creates the `search` command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the remote icon sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			rt, store, _, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			limit, _ := cmd.Flags().GetInt("limit")
			client := remote.NewClient(rt.Hosts, store.Settings().CacheSize())

			ids, err := client.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return handler.Handle(err)
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(ids)
			}
			if len(ids) == 0 {
				fmt.Println("No icons found.")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 64, "Maximum number of results")
	return cmd
}

// NewRandomCmd creates the `random` command
func NewRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Pick a random glyph from the preferred icon sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			rt, store, _, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			settings := store.Settings()
			client := remote.NewClient(rt.Hosts, settings.CacheSize())

			id, ok := client.RandomGlyph(cmd.Context(), settings.PreferredPrefixes())
			if !ok {
				fmt.Println("No glyph available.")
				return nil
			}
			fmt.Println(id)
			return nil
		},
	}
}
