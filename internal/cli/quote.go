package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/client"
	"github.com/hplandscaping/booking-platform/internal/forms"
	"github.com/hplandscaping/booking-platform/internal/wizard"
)

func newQuoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Request a commercial quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := forms.NewQuoteSession(app.Catalog, client.QuoteSubmitter{Client: app.client()},
				wizard.WithSubmitTimeout(app.settings.Timeout),
				wizard.WithLogger(app.Logger),
			)
			receipt, err := runWizard(cmd.Context(), out, app.Driver, s, quoteAsker(app), func(f forms.QuoteForm) []forms.Line {
				return f.Review(app.Catalog)
			}, "Review your quote request")
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			success.Fprintln(out, receipt.Message)
			fmt.Fprintf(out, "Reference: %s\n", receipt.ID)
			fmt.Fprintln(out, "Our commercial team will follow up with a detailed proposal.")
			return nil
		},
	}
}

func quoteAsker(app *App) stepAsker[forms.QuoteForm] {
	cat := app.Catalog
	d := app.Driver
	return func(ctx context.Context, s *wizard.Session[forms.QuoteForm]) error {
		f := s.Form()
		switch s.Current().Name {
		case "company":
			answers, err := inputs(ctx, d,
				InputConfig{Message: "Company name", Default: f.CompanyName},
				InputConfig{Message: "Contact name", Default: f.ContactName},
				InputConfig{Message: "Email", Default: f.Email},
				InputConfig{Message: "Phone", Default: f.Phone},
			)
			if err != nil {
				return err
			}
			return s.Apply(
				wizard.Replace("companyName", answers[0]),
				wizard.Replace("contactName", answers[1]),
				wizard.Replace("email", answers[2]),
				wizard.Replace("phone", answers[3]),
			)

		case "property":
			address, err := d.Input(ctx, InputConfig{Message: "Property address", Default: f.PropertyAddress})
			if err != nil {
				return err
			}
			propertyType, err := selectOption(ctx, d, "Property type", cat.Options(catalog.QuotePropertyTypes), f.PropertyType)
			if err != nil {
				return err
			}
			size, err := d.Input(ctx, InputConfig{Message: "Property size", Default: f.PropertySize, Help: "e.g. 2 acres or 15,000 sq ft"})
			if err != nil {
				return err
			}
			return s.Apply(
				wizard.Replace("propertyAddress", address),
				wizard.Replace("propertyType", propertyType),
				wizard.Replace("propertySize", size),
			)

		case "services":
			if err := toggleServices(ctx, d, cat, s); err != nil {
				return err
			}
			projectType, err := selectOption(ctx, d, "Project type", cat.Options(catalog.ProjectTypes), f.ProjectType)
			if err != nil {
				return err
			}
			answers, err := inputs(ctx, d,
				InputConfig{Message: "Timeline (optional)", Default: f.Timeline},
				InputConfig{Message: "Budget (optional)", Default: f.Budget},
			)
			if err != nil {
				return err
			}
			return s.Apply(
				wizard.Replace("projectType", projectType),
				wizard.Replace("timeline", answers[0]),
				wizard.Replace("budget", answers[1]),
			)

		case "contact":
			description, err := d.TextArea(ctx, InputConfig{Message: "Project description", Default: f.ProjectDescription})
			if err != nil {
				return err
			}
			method, err := selectOption(ctx, d, "Preferred contact method", cat.Options(catalog.ContactMethods), f.PreferredContactMethod)
			if err != nil {
				return err
			}
			when, err := d.Input(ctx, InputConfig{Message: "Best time to reach you (optional)", Default: f.PreferredContactTime})
			if err != nil {
				return err
			}
			return s.Apply(
				wizard.Replace("projectDescription", description),
				wizard.Replace("preferredContactMethod", method),
				wizard.Replace("preferredContactTime", when),
			)
		}
		return nil
	}
}

// toggleServices shows the catalog as a multi-select and toggles every
// service whose selection changed.
func toggleServices(ctx context.Context, d PromptDriver, cat *catalog.Catalog, s *wizard.Session[forms.QuoteForm]) error {
	current := s.Form().SelectedServices
	names := make([]string, 0, len(cat.Services))
	var defaults []int
	for i, svc := range cat.Services {
		names = append(names, svc.Name)
		if slices.Contains(current, svc.ID) {
			defaults = append(defaults, i)
		}
	}
	picked, err := d.MultiSelect(ctx, SelectConfig{Message: "Services needed", Options: names, Defaults: defaults})
	if err != nil {
		return err
	}
	for i, svc := range cat.Services {
		if slices.Contains(picked, i) != slices.Contains(current, svc.ID) {
			if err := s.Toggle("selectedServices", svc.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func inputs(ctx context.Context, d PromptDriver, cfgs ...InputConfig) ([]string, error) {
	out := make([]string, 0, len(cfgs))
	for _, cfg := range cfgs {
		v, err := d.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
