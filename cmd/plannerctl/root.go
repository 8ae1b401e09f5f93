package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/planner/internal/config"
	"github.com/fastygo/planner/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "plannerctl",
	Short:         "Operate the planner backend",
	Long:          `Maintenance commands for the planner backend: schema migrations, reminder rescans and the reminder ledger.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "override LOG_LEVEL")
}

// setup loads configuration and builds a console logger for a command.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Logger.Level
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		level = override
	}
	log, err := logger.New(logger.Config{
		Level:    level,
		Encoding: "console",
		Service:  "plannerctl",
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
