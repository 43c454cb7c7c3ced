package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dentallab",
	Short: "Dental lab appointment booking service",
	Long: `Appointment slot availability and booking for a dental lab.

Without a subcommand the HTTP server is started.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML configuration file")

	rootCmd.AddCommand(serveCmd, slotsCmd, validateCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
