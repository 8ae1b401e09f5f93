package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/planner/internal/infrastructure/ledger"
	"github.com/fastygo/planner/internal/reminder"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect or prune the reminder ledger (server must be stopped)",
}

var ledgerStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count ledger records per reminder state",
	RunE:  runLedgerStats,
}

var ledgerCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove settled records older than the retention",
	RunE:  runLedgerCleanup,
}

func init() {
	ledgerCleanupCmd.Flags().Duration("older-than", 0, "retention override (default LEDGER_RETENTION)")
	ledgerCmd.AddCommand(ledgerStatsCmd, ledgerCleanupCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func runLedgerStats(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := ledger.Open(cfg.Ledger.Path, "")
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	counts := make(map[reminder.State]int)
	for _, r := range records {
		counts[r.State]++
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tRECORDS")
	for _, state := range []reminder.State{
		reminder.StateUnscheduled,
		reminder.StateScheduled,
		reminder.StateFired,
		reminder.StateCancelled,
	} {
		fmt.Fprintf(w, "%s\t%d\n", state, counts[state])
	}
	fmt.Fprintf(w, "total\t%d\n", len(records))
	return w.Flush()
}

func runLedgerCleanup(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	retention := cfg.Ledger.Retention
	if cmd.Flags().Changed("older-than") {
		retention, _ = cmd.Flags().GetDuration("older-than")
	}

	store, err := ledger.Open(cfg.Ledger.Path, "")
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Cleanup(time.Now().Add(-retention))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d records\n", removed)
	return nil
}
