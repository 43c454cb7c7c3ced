package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the postgres schema or create MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd.Context(), configPath, bootstrapOptions{migrate: true, logLevel: cliLogLevel})
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "%s storage is up to date\n", app.cfg.Storage.Driver)
		return nil
	},
}
