package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// @title Event Operations Admin API
// @version 1.0
// @description Admin backend for event operations: zones, shifts, staff, facilities, tasks and issue triage.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
var rootCmd = &cobra.Command{
	Use:   "event-ops",
	Short: "Event operations admin API",
	Long: `event-ops serves the admin API of the event operations dashboard:
rostering, zone coverage, facility tracking, task dispatch and issue triage.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
