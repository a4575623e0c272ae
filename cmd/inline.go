package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/pkg/dom"
	"github.com/iconica/core/pkg/emoji"
	"github.com/iconica/core/pkg/inline"
	"github.com/iconica/core/pkg/library"
	"github.com/iconica/core/pkg/surfaces"
)

// NewInlineCmd creates the `inline` command
func NewInlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inline <file>",
		Short: "Resolve inline icon shortcodes in a note",
		Long: `Runs the inline rendering pass over a note's text with the persisted
settings (prefix, icon size, enable toggle) and reports every shortcode
that resolves to an icon.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			_, store, lib, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			out := cmd.OutOrStdout()
			settings := store.Settings()
			resolver, renderer := inline.NewFromSettings(lib, emoji.Default(), settings,
				func() library.Theme { return library.Light })
			if !renderer.Enabled() {
				fmt.Fprintln(out, "Inline icons are disabled in settings.")
				return nil
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return handler.Handle(err)
			}
			text := string(data)

			matches := resolver.Scan(text)
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(matches)
			}
			for _, m := range matches {
				fmt.Fprintf(out, "%6d  :%s:  %s %s\n", m.Start, m.Token, m.Ref.Kind, m.Ref.Value)
			}

			root := dom.NewElement("div")
			root.Append(dom.NewText(text))
			renderer.ProcessTree(root)
			injected := len(root.FindAll(func(n *dom.Node) bool {
				return !n.IsText() && n.Attr(surfaces.MarkerAttr) != ""
			}))
			fmt.Fprintf(out, "%d shortcode(s) rendered at %dpx\n", injected, settings.InlineIconSize)
			return nil
		},
	}
}
