package app

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./cmd/app/config.yml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "occurrence-registration-api",
	Short: "Registration of members and their dependents to events",
	Long: `Serves the registration API for one-off and recurring events: registering,
updating sessions, cancelling, waitlists, payments and reservation listings.

Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Start()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path of the yaml config file")
}

func Execute() error {
	return rootCmd.Execute()
}
