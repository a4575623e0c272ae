package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/version"
)

// NewVersionCmd creates the `version` command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(info)
			}
			fmt.Println(info.String())
			return nil
		},
	}
}
