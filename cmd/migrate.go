package main

import (
	"fmt"

	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/pkg/logger"
	"github.com/shenikar/event_ops_system/pkg/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back database migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(cfg.LogLevel)

			switch args[0] {
			case "up":
				// 0 шагов = применить все
			case "down":
				if steps <= 0 {
					steps = 1
				}
				steps = -steps
			default:
				return fmt.Errorf("unknown direction %q, expected up or down", args[0])
			}

			log.WithField("steps", steps).Info("Running database migrations...")
			version, err := postgres.Migrate(cfg, steps)
			if err != nil {
				return err
			}
			log.WithField("version", version).Info("Database migrations applied successfully")
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply (up) or roll back (down, default 1)")
	return cmd
}
