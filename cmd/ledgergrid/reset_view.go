package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/ledgergrid/internal/config"
	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/prefs"
)

var resetViewCmd = &cobra.Command{
	Use:   "reset-view [key]",
	Short: "Forget a stored column view so the defaults apply again",
	Long: `Deletes the stored column layout for key (default: grid.storage_key).
The next start seeds the declared defaults again.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		key := e.cfg.Grid.StorageKey
		if len(args) == 1 {
			key = args[0]
		}

		switch e.cfg.Storage.Driver {
		case config.DriverMemory:
			fmt.Fprintln(cmd.OutOrStdout(), "memory storage keeps no views")
			return nil
		case config.DriverFile:
			err = prefs.NewViewFile(e.cfg.Storage.Path).Delete(key)
		default:
			err = repository.NewViewConfigRepo(e.db).Delete(ctx, key)
		}
		if err != nil {
			return fmt.Errorf("reset view %q: %w", key, err)
		}
		e.logger.Info("view reset", "key", key, "storage", e.cfg.Storage.Driver)
		fmt.Fprintf(cmd.OutOrStdout(), "view %q reset\n", key)
		return nil
	},
}
