package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vietanh2810/occurrence-registration-api/internal/repository/dao"
)

var resetTables bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, postgresDB, err := bootstrap()
		if err != nil {
			return err
		}

		if resetTables {
			zap.L().Warn("dropping every table of the public schema")
			if err := dao.DropAllTables(postgresDB); err != nil {
				return fmt.Errorf("dao.DropAllTables -> %w", err)
			}
		}

		if err := dao.InitTables(postgresDB); err != nil {
			return fmt.Errorf("dao.InitTables -> %w", err)
		}
		zap.L().Info("database tables are up to date")

		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&resetTables, "reset", false, "drop every table before migrating")
	rootCmd.AddCommand(migrateCmd)
}
