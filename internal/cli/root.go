// Package cli implements bookingctl, a terminal front end for the booking
// and quote wizards.
package cli

import (
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/client"
	"github.com/hplandscaping/booking-platform/pkg/logging"
)

// App carries what the commands need. Zero fields are filled with terminal
// defaults by NewRootCmd.
type App struct {
	Driver     PromptDriver
	HTTPClient *http.Client
	Logger     *logging.Logger
	Catalog    *catalog.Catalog
	Now        func() time.Time

	v          *viper.Viper
	configFile string
	settings   Settings
}

// NewRootCmd builds the bookingctl command tree.
func NewRootCmd(app *App, version string) *cobra.Command {
	if app.Driver == nil {
		app.Driver = NewSurveyDriver()
	}
	if app.Logger == nil {
		app.Logger = logging.Discard()
	}
	if app.Catalog == nil {
		app.Catalog = catalog.Default()
	}
	if app.Now == nil {
		app.Now = time.Now
	}
	app.v = newViper()

	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "HP Landscaping booking console",
		Long:          "Request appointments and commercial quotes, and browse availability, from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(app.v, cmd, app.configFile)
			if err != nil {
				return err
			}
			app.settings = settings
			if settings.NoColor {
				color.NoColor = true
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "config file (default ./bookingctl.yaml or ~/.config/bookingctl.yaml)")
	flags.String(keyAPIURL, "", "booking API base URL (env BOOKINGCTL_API_URL)")
	flags.String(keyTimezone, "", "business timezone used for availability")
	flags.Duration(keyTimeout, 0, "request timeout")
	flags.Bool(keyNoColor, false, "disable colored output")

	root.AddCommand(newBookCmd(app))
	root.AddCommand(newQuoteCmd(app))
	root.AddCommand(newSlotsCmd(app))
	root.AddCommand(newCalendarCmd(app))
	root.AddCommand(newServicesCmd(app))
	return root
}

func (a *App) client() *client.Client {
	hc := a.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: a.settings.Timeout}
	}
	return client.New(a.settings.APIURL, client.WithHTTPClient(hc), client.WithLogger(a.Logger))
}

func (a *App) provider() *availability.Provider {
	return availability.NewProvider(a.settings.location(), availability.WithClock(a.Now))
}
