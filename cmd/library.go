package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/pkg/ingest"
	"github.com/iconica/core/pkg/library"
)

// NewLibraryCmd creates the `library` command group
func NewLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the custom icon library",
	}
	cmd.AddCommand(
		newLibraryListCmd(),
		newLibraryAddCmd(),
		newLibraryRemoveCmd(),
		newLibraryRenameCmd(),
		newLibrarySearchCmd(),
	)
	return cmd
}

func newLibraryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List library assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			_, _, lib, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			return listAssets(cmd, lib.GetAll())
		},
	}
}

func newLibrarySearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search library assets by name or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			_, _, lib, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			return listAssets(cmd, lib.Search(args[0]))
		},
	}
}

func listAssets(cmd *cobra.Command, assets []library.Asset) error {
	if cli.GetOptions(cmd).JSONOutput {
		return printJSON(assets)
	}
	if len(assets) == 0 {
		fmt.Println("No assets in the library.")
		return nil
	}
	for _, a := range assets {
		fmt.Printf("%-24s %-20s %s\n", a.ID, a.Name, a.Format())
	}
	return nil
}

func newLibraryAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file>...",
		Short: "Ingest image files into the library",
		Long: `Processes one or more image files and stores them as library assets.
Raster images are cropped square, scaled down and stored as a light/dark
PNG pair; SVG files are stored as-is.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			_, _, lib, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			size, _ := cmd.Flags().GetInt("size")
			progress := cli.NewProgressReporter(cmd.OutOrStdout())

			for _, file := range args {
				progress.Update(file, "processing")
				if _, err := addFile(lib, file, size); err != nil {
					progress.Update(file, "failed")
					handler.Handle(err)
					continue
				}
				progress.Update(file, "done")
			}
			progress.Done()

			if len(progress.Failed()) > 0 {
				return fmt.Errorf("%d file(s) failed to ingest", len(progress.Failed()))
			}
			return nil
		},
	}
	cmd.Flags().Int("size", 64, "Target pixel size for raster assets")
	return cmd
}

func addFile(lib *library.Store, file string, size int) (library.Asset, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return library.Asset{}, err
	}

	id := library.NewAssetID()
	name := library.DisplayName(file)
	mimeType := mime.TypeByExtension(filepath.Ext(file))

	if ingest.ClassifyFormat(file, mimeType) == ingest.Vector {
		vec, err := ingest.IngestVector(data)
		if err != nil {
			return library.Asset{}, err
		}
		return lib.StoreProcessed(id, name, "svg", vec.Data, vec.Data)
	}

	res, err := ingest.IngestRaster(data, size)
	if err != nil {
		return library.Asset{}, err
	}
	return lib.StoreProcessed(id, name, "png", res.LightData, res.DarkData)
}

func newLibraryRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an asset from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			_, store, lib, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			id := args[0]
			cascade, _ := cmd.Flags().GetBool("cascade")
			if cascade {
				if err := store.RemoveAssetReferences(id); err != nil {
					return handler.Handle(err)
				}
			}
			if err := lib.Remove(id); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("Removed asset %s\n", id)
			return nil
		},
	}
	cmd.Flags().Bool("cascade", false, "Also remove every assignment referencing the asset")
	return cmd
}

func newLibraryRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a library asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			_, _, lib, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			if err := lib.Rename(args[0], args[1]); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("Renamed %s to %q\n", args[0], args[1])
			return nil
		},
	}
}
