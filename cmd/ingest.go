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

// NewIngestCmd creates the `ingest` command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Process an image file without adding it to the library",
		Long: `Runs the image pipeline on a file and writes the resulting variants
next to it: a raster input produces <name>-light.png and <name>-dark.png,
an SVG passes through unchanged. Useful for previewing what 'library add'
would store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			file := args[0]
			data, err := os.ReadFile(file)
			if err != nil {
				return handler.Handle(err)
			}

			size, _ := cmd.Flags().GetInt("size")
			outDir, _ := cmd.Flags().GetString("out")
			if outDir == "" {
				outDir = filepath.Dir(file)
			}
			base := library.DisplayName(file)
			mimeType := mime.TypeByExtension(filepath.Ext(file))

			if ingest.ClassifyFormat(file, mimeType) == ingest.Vector {
				vec, err := ingest.IngestVector(data)
				if err != nil {
					return handler.Handle(err)
				}
				fmt.Printf("%s: vector, %d bytes, passthrough\n", file, len(vec.Data))
				return nil
			}

			res, err := ingest.IngestRaster(data, size)
			if err != nil {
				return handler.Handle(err)
			}

			lightPath := filepath.Join(outDir, base+"-light.png")
			darkPath := filepath.Join(outDir, base+"-dark.png")
			if err := os.WriteFile(lightPath, res.LightData, 0644); err != nil {
				return handler.Handle(err)
			}
			if err := os.WriteFile(darkPath, res.DarkData, 0644); err != nil {
				return handler.Handle(err)
			}
			fmt.Printf("%s: raster, wrote %s and %s\n", file, lightPath, darkPath)
			return nil
		},
	}
	cmd.Flags().Int("size", 64, "Target pixel size")
	cmd.Flags().String("out", "", "Output directory (defaults to the input's directory)")
	return cmd
}
