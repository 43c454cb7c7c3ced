package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/DentalLab-BookingService/internal/domain"
	getAvailableSlotsUC "github.com/m04kA/DentalLab-BookingService/internal/usecase/get_available_slots"
)

var (
	slotsDate    string
	slotsService string
	slotsAll     bool
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print candidate slots for a date and service",
	Long: `Print the candidate start times of a day with their availability.

Examples:
  dentallab slots --date 2025-03-14 --service crown-fitting
  dentallab slots --date 2025-03-14 --service consultation --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := time.Parse(domain.DateFormat, slotsDate)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
		}

		app, err := bootstrap(cmd.Context(), configPath, bootstrapOptions{logLevel: cliLogLevel})
		if err != nil {
			return err
		}
		defer app.Close()

		uc := getAvailableSlotsUC.NewUseCase(app.store, app.validator, app.generator, app.log)
		resp, err := uc.Execute(cmd.Context(), &getAvailableSlotsUC.Request{ServiceKey: slotsService, Date: date})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s, %s (%d min)\n", resp.Date.Format("Monday, January 2, 2006"), resp.ServiceName, resp.DurationMinutes)

		if resp.Closed {
			fmt.Fprintln(out, "Clinic is closed on this date.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "START\tEND\tSTATUS")
		for _, slot := range resp.Slots {
			if !slot.Available && !slotsAll {
				continue
			}
			status := "available"
			if !slot.Available {
				status = slot.Reason.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", slot.StartTime, slot.EndTime, status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(out, "%d of %d slots available\n", resp.AvailableCount(), len(resp.Slots))
		return nil
	},
}

func init() {
	slotsCmd.Flags().StringVarP(&slotsDate, "date", "d", "", "date (YYYY-MM-DD)")
	slotsCmd.Flags().StringVarP(&slotsService, "service", "s", "", "service key from the catalog")
	slotsCmd.Flags().BoolVar(&slotsAll, "all", false, "include unavailable slots with the rejection reason")
	_ = slotsCmd.MarkFlagRequired("date")
	_ = slotsCmd.MarkFlagRequired("service")
}
