package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hplandscaping/booking-platform/internal/availability"
)

func newSlotsCmd(app *App) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show the time slots offered for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(date) == "" {
				date = app.provider().Today().String()
			}
			resp, err := app.client().AvailableTimes(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("failed to fetch time slots: %w", err)
			}

			out := cmd.OutOrStdout()
			label := resp.Date
			if d, err := availability.ParseDate(resp.Date); err == nil {
				label = d.Long()
			}
			bold.Fprintf(out, "Available times for %s\n", label)
			for _, slot := range resp.AvailableTimes {
				fmt.Fprintf(out, "  - %s\n", slot)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	return cmd
}

func newCalendarCmd(app *App) *cobra.Command {
	var month string
	var count int
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show which days can be booked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := app.provider()
			view := provider.CurrentMonth()
			if strings.TrimSpace(month) != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, expected YYYY-MM", month)
				}
				view = provider.Month(t.Year(), t.Month())
			}

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				printMonth(out, view)
				year, next := view.Next()
				view = provider.Month(year, next)
			}
			faint.Fprintln(out, "\nPast dates and Sundays are unavailable.")
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default current month)")
	cmd.Flags().IntVar(&count, "months", 1, "number of consecutive months to show")
	return cmd
}

func newServicesCmd(app *App) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the services we offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services := app.Catalog.Services
			if !offline {
				remote, err := app.client().Services(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to fetch services: %w", err)
				}
				services = remote
			}

			out := cmd.OutOrStdout()
			for _, svc := range services {
				cyan.Fprintf(out, "%s", svc.Name)
				faint.Fprintf(out, " (%s)\n", svc.ID)
				fmt.Fprintf(out, "  %s\n", svc.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "use the built-in catalog instead of the API")
	return cmd
}
