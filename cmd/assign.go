package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
)

// NewSetCmd creates the `set` command
func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <path> <icon>",
		Short: "Assign an icon to a vault file or folder",
		Long: `Assigns an icon to a vault path. The icon argument can be an emoji
literal, an emoji shortcode like :fire:, a glyph id like lucide:star, or
the id or name of a library asset.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			_, store, lib, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			ref, err := parseRef(args[1], lib)
			if err != nil {
				return handler.Handle(err)
			}

			path := filepath.ToSlash(args[0])
			if err := store.SetIcon(path, ref); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("Assigned %s icon to %s\n", ref.Kind, path)
			return nil
		},
	}
	return cmd
}

// NewRemoveCmd creates the `remove` command
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove the icon assigned to a vault path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			_, store, _, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			path := filepath.ToSlash(args[0])
			if _, ok := store.Icon(path); !ok {
				fmt.Printf("No icon assigned to %s\n", path)
				return nil
			}
			if err := store.RemoveIcon(path); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("Removed icon from %s\n", path)
			return nil
		},
	}
	return cmd
}

// NewListCmd creates the `list` command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all icon assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			_, store, _, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			iconMap := store.IconMap()

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(iconMap)
			}

			if len(iconMap) == 0 {
				fmt.Println("No icons assigned.")
				return nil
			}

			paths := make([]string, 0, len(iconMap))
			for p := range iconMap {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			for _, p := range paths {
				ref := iconMap[p]
				fmt.Printf("%-40s %s %s\n", p, ref.Kind, ref.Value)
			}
			return nil
		},
	}
	return cmd
}
