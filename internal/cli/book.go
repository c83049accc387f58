package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/client"
	"github.com/hplandscaping/booking-platform/internal/forms"
	"github.com/hplandscaping/booking-platform/internal/wizard"
)

// upcomingDays is how many selectable dates the schedule step offers.
const upcomingDays = 21

const noAlternate = "No alternate date"

func newBookCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Request an appointment",
		Long:  "Walk through the four booking steps and send the request to the office",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			api := app.client()
			provider := app.provider()

			s := forms.NewBookingSession(provider, app.Catalog, client.BookingSubmitter{Client: api},
				wizard.WithSubmitTimeout(app.settings.Timeout),
				wizard.WithLogger(app.Logger),
			)
			receipt, err := runWizard(ctx, out, app.Driver, s, bookingAsker(app, provider, api), func(f forms.BookingForm) []forms.Line {
				return f.Review(app.Catalog)
			}, "Review your appointment request")
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			success.Fprintln(out, receipt.Message)
			fmt.Fprintf(out, "Reference: %s\n", receipt.ID)
			fmt.Fprintln(out, "We'll contact you within 24 hours to confirm your appointment.")
			return nil
		},
	}
}

func bookingAsker(app *App, provider *availability.Provider, api *client.Client) stepAsker[forms.BookingForm] {
	cat := app.Catalog
	d := app.Driver
	return func(ctx context.Context, s *wizard.Session[forms.BookingForm]) error {
		f := s.Form()
		switch s.Current().Name {
		case "service":
			svc, err := selectService(ctx, d, cat, f.SelectedService)
			if err != nil {
				return err
			}
			kind, err := selectOption(ctx, d, "Appointment type", cat.Options(catalog.AppointmentTypes), f.ServiceType)
			if err != nil {
				return err
			}
			return s.Apply(wizard.Replace("selectedService", svc), wizard.Replace("serviceType", kind))

		case "schedule":
			dates := upcoming(provider, upcomingDays)
			date, err := selectDate(ctx, d, "Preferred date", dates, f.PreferredDate, "")
			if err != nil {
				return err
			}
			slot, err := selectSlot(ctx, d, api, "Preferred time", date, f.PreferredTime)
			if err != nil {
				return err
			}
			alt, err := selectDate(ctx, d, "Alternate date (optional)", dates, f.AlternateDate, noAlternate)
			if err != nil {
				return err
			}
			altSlot := ""
			if !alt.IsZero() {
				if altSlot, err = selectSlot(ctx, d, api, "Alternate time", alt, f.AlternateTime); err != nil {
					return err
				}
			}
			return s.Apply(
				wizard.Replace("preferredDate", date.String()),
				wizard.Replace("preferredTime", slot),
				wizard.Replace("alternateDate", alt.String()),
				wizard.Replace("alternateTime", altSlot),
			)

		case "contact":
			name, err := d.Input(ctx, InputConfig{Message: "Full name", Default: f.ContactName})
			if err != nil {
				return err
			}
			email, err := d.Input(ctx, InputConfig{Message: "Email", Default: f.Email})
			if err != nil {
				return err
			}
			phone, err := d.Input(ctx, InputConfig{Message: "Phone", Default: f.Phone})
			if err != nil {
				return err
			}
			address, err := d.Input(ctx, InputConfig{Message: "Property address", Default: f.PropertyAddress})
			if err != nil {
				return err
			}
			propertyType, err := selectOption(ctx, d, "Property type", cat.Options(catalog.BookingPropertyTypes), f.PropertyType)
			if err != nil {
				return err
			}
			return s.Apply(
				wizard.Replace("contactName", name),
				wizard.Replace("email", email),
				wizard.Replace("phone", phone),
				wizard.Replace("propertyAddress", address),
				wizard.Replace("propertyType", propertyType),
			)

		case "confirm":
			notes, err := d.TextArea(ctx, InputConfig{Message: "Additional notes (optional)", Default: f.AdditionalNotes})
			if err != nil {
				return err
			}
			source, err := selectOptional(ctx, d, "How did you hear about us?", cat.Options(catalog.ReferralSources), f.HearAboutUs)
			if err != nil {
				return err
			}
			return s.Apply(wizard.Replace("additionalNotes", notes), wizard.Replace("hearAboutUs", source))
		}
		return nil
	}
}

// upcoming lists the next n selectable dates starting today.
func upcoming(provider *availability.Provider, n int) []availability.Date {
	out := make([]availability.Date, 0, n)
	d := provider.NextAvailable(provider.Today())
	for len(out) < n {
		out = append(out, d)
		d = provider.NextAvailable(d.AddDays(1))
	}
	return out
}

func selectService(ctx context.Context, d PromptDriver, cat *catalog.Catalog, current string) (string, error) {
	names := make([]string, 0, len(cat.Services))
	def := 0
	for i, svc := range cat.Services {
		names = append(names, svc.Name)
		if svc.ID == current {
			def = i
		}
	}
	i, err := d.Select(ctx, SelectConfig{Message: "Service", Options: names, DefaultIndex: def})
	if err != nil {
		return "", err
	}
	if i < 0 {
		return "", nil
	}
	return cat.Services[i].ID, nil
}

func selectOption(ctx context.Context, d PromptDriver, message string, opts []catalog.Option, current string) (string, error) {
	labels := make([]string, 0, len(opts))
	def := 0
	for i, o := range opts {
		labels = append(labels, o.Label)
		if o.Value == current {
			def = i
		}
	}
	i, err := d.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def})
	if err != nil {
		return "", err
	}
	if i < 0 {
		return "", nil
	}
	return opts[i].Value, nil
}

const skipOption = "Prefer not to say"

// selectOptional is selectOption with a leading choice that leaves the field blank.
func selectOptional(ctx context.Context, d PromptDriver, message string, opts []catalog.Option, current string) (string, error) {
	return selectOption(ctx, d, message, append([]catalog.Option{{Label: skipOption}}, opts...), current)
}

// selectDate offers dates by their long form. A non-empty none label adds a
// leading choice that returns the zero date.
func selectDate(ctx context.Context, d PromptDriver, message string, dates []availability.Date, current availability.Date, none string) (availability.Date, error) {
	var labels []string
	offset := 0
	if none != "" {
		labels = append(labels, none)
		offset = 1
	}
	def := 0
	for i, date := range dates {
		labels = append(labels, date.Long())
		if date.Equal(current) {
			def = i + offset
		}
	}
	i, err := d.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, PageSize: 10})
	if err != nil {
		return availability.Date{}, err
	}
	if i < offset {
		return availability.Date{}, nil
	}
	return dates[i-offset], nil
}

// selectSlot asks the API which times are offered for date, falling back to
// the fixed list when it cannot be reached.
func selectSlot(ctx context.Context, d PromptDriver, api *client.Client, message string, date availability.Date, current string) (string, error) {
	slots := availability.TimeSlots()
	if resp, err := api.AvailableTimes(ctx, date.String()); err == nil && len(resp.AvailableTimes) > 0 {
		slots = resp.AvailableTimes
	}
	i, err := d.Select(ctx, SelectConfig{Message: message, Options: slots, DefaultIndex: indexOf(slots, current), PageSize: 10})
	if err != nil {
		return "", err
	}
	if i < 0 {
		return "", nil
	}
	return slots[i], nil
}
