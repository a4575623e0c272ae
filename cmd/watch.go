package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iconica/core/cli"
	"github.com/iconica/core/pkg/surfaces"
	"github.com/iconica/core/pkg/vaultwatch"
)

// NewWatchCmd creates the `watch` command
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the vault and keep assignments path-consistent",
		Long: `Watches the configured vault directory and keeps icon assignments
aligned with it: a moved file keeps its icon under the new path, a
deleted file's assignment is pruned, and a file that vanishes without a
matching create is reported but left assigned. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			logger := cli.GetLogger(cmd)

			rt, store, _, err := openStores(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			bus := surfaces.NewBus()
			bus.Subscribe(surfaces.Rename, func(ev surfaces.Event) {
				if _, ok := store.Icon(ev.OldPath); !ok {
					return
				}
				if err := store.RenamePath(ev.OldPath, ev.Path); err != nil {
					logger.WithError(err).Warnf("failed to move assignment %s -> %s", ev.OldPath, ev.Path)
					return
				}
				logger.Infof("Moved icon assignment %s -> %s", ev.OldPath, ev.Path)
			})
			bus.Subscribe(surfaces.Delete, func(ev surfaces.Event) {
				if _, ok := store.Icon(ev.Path); !ok {
					return
				}
				if err := store.DeletePath(ev.Path); err != nil {
					logger.WithError(err).Warnf("failed to prune assignment for %s", ev.Path)
					return
				}
				logger.Infof("Pruned icon assignment for deleted path %s", ev.Path)
			})

			watcher, err := vaultwatch.NewWatcher(rt.VaultDir, bus, rt.DebounceMs)
			if err != nil {
				return handler.Handle(err)
			}
			defer watcher.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s (ctrl-c to stop)\n", rt.VaultDir)
			watcher.Start(ctx)
			return nil
		},
	}
}
