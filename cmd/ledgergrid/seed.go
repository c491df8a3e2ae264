package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/ledgergrid/internal/database"
	"github.com/jask/ledgergrid/internal/database/repository"
	"github.com/jask/ledgergrid/internal/service"
	"github.com/jask/ledgergrid/internal/testdata"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo transactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		reset, _ := cmd.Flags().GetBool("reset")

		if reset {
			maint := &service.MaintenanceService{DB: e.db}
			if err := maint.Reset(ctx); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			if err := database.SeedDefaults(ctx, e.db); err != nil {
				return fmt.Errorf("seed defaults: %w", err)
			}
			e.logger.Info("database reset")
		}

		repos := testdata.Repos{
			Accounts:     repository.NewAccountRepo(e.db),
			Transactions: repository.NewTransactionRepo(e.db),
		}
		if err := testdata.Seed(ctx, repos, count, seed); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		total, err := repos.Transactions.Count(ctx)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		e.logger.Info("seeded transactions", "count", count, "seed", seed, "total", total)
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d transactions (%d total)\n", count, total)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("count", 120, "number of transactions to create")
	seedCmd.Flags().Int64("seed", 1, "random seed; the same seed yields the same rows")
	seedCmd.Flags().Bool("reset", false, "wipe transactions, accounts and stored views first")
}
