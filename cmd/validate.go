package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/DentalLab-BookingService/internal/availability"
	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	"github.com/m04kA/DentalLab-BookingService/pkg/types"
)

var (
	validateDate    string
	validateTime    string
	validateService string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether an appointment could be booked",
	Long: `Run the booking validator against the configured store and print the result.

Examples:
  dentallab validate --date 2025-03-14 --time 09:30 --service crown-fitting`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := time.Parse(domain.DateFormat, validateDate)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
		}

		start, err := types.NewTimeStringFromString(validateTime)
		if err != nil {
			return fmt.Errorf("invalid time format, use HH:MM: %w", err)
		}

		app, err := bootstrap(cmd.Context(), configPath, bootstrapOptions{logLevel: cliLogLevel})
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := app.validator.Validate(cmd.Context(), availability.Request{
			Date:       date,
			StartTime:  start,
			ServiceKey: validateService,
		}, time.Now())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateDate, "date", "d", "", "date (YYYY-MM-DD)")
	validateCmd.Flags().StringVarP(&validateTime, "time", "t", "", "start time (HH:MM)")
	validateCmd.Flags().StringVarP(&validateService, "service", "s", "", "service key from the catalog")
	_ = validateCmd.MarkFlagRequired("date")
	_ = validateCmd.MarkFlagRequired("time")
	_ = validateCmd.MarkFlagRequired("service")
}
