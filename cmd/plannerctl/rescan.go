package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/planner/internal/infrastructure/ledger"
	pgInfra "github.com/fastygo/planner/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/planner/internal/infrastructure/redis"
	"github.com/fastygo/planner/internal/reminder"
	"github.com/fastygo/planner/internal/retry"
	"github.com/fastygo/planner/repository/postgres"
	redisRepo "github.com/fastygo/planner/repository/redis"
	preferenceUC "github.com/fastygo/planner/usecase/preference"
)

var rescanCmd = &cobra.Command{
	Use:   "rescan",
	Short: "Run one reminder safety-net pass",
	Long: `Re-plans reminders of every incomplete task whose deadline lies within the scan
window of now. With --ledger the reminder ledger is updated too; the server must be
stopped for that since the ledger file is locked while it runs.`,
	RunE: runRescan,
}

func init() {
	rescanCmd.Flags().Duration("window", reminder.RescanWindow, "how far around now to look for deadlines")
	rescanCmd.Flags().Bool("ledger", false, "record reminder state in the ledger file")
	rootCmd.AddCommand(rescanCmd)
}

func runRescan(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Context.RequestTimeout)
	defer cancel()

	pool, err := pgInfra.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pgInfra.Close(pool, log)

	redisClient, err := redisInfra.NewClient(ctx, cfg.Redis, "plannerctl")
	if err != nil {
		return err
	}
	defer redisClient.Close()

	policy := retry.Policy{Attempts: cfg.Retry.Attempts, Initial: cfg.Retry.InitialDelay, Multiplier: cfg.Retry.Multiplier}
	prefs := preferenceUC.New(postgres.NewUserRepository(pool), nil, policy, log)
	opts := []reminder.RunnerOption{reminder.WithPreferences(prefs)}

	if useLedger, _ := cmd.Flags().GetBool("ledger"); useLedger {
		store, err := ledger.Open(cfg.Ledger.Path, "")
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer store.Close()
		opts = append(opts, reminder.WithLedger(store))
	}

	window, _ := cmd.Flags().GetDuration("window")
	planner := reminder.NewPlanner(cfg.Location)
	runner := reminder.NewRunner(redisRepo.NewReminderRepository(redisClient, cfg.Redis.KeyPrefix), log, opts...)
	result := reminder.NewScanner(postgres.NewTaskRepository(pool), planner, runner, window, log).Scan(ctx)

	fmt.Fprintln(cmd.OutOrStdout(), result)
	if result == reminder.ResultFailed {
		return fmt.Errorf("rescan failed")
	}
	return nil
}
