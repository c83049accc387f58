package forms

import (
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/quotes"
	"github.com/hplandscaping/booking-platform/internal/validation"
	"github.com/hplandscaping/booking-platform/internal/wizard"
)

// QuoteForm holds every field of the commercial quote wizard.
type QuoteForm struct {
	// Company information
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`

	// Property details
	PropertyAddress string `json:"propertyAddress"`
	PropertyType    string `json:"propertyType"`
	PropertySize    string `json:"propertySize"`

	// Services needed
	SelectedServices []string `json:"selectedServices"`
	ProjectType      string   `json:"projectType"`
	Timeline         string   `json:"timeline"`
	Budget           string   `json:"budget"`

	// Contact & timeline
	ProjectDescription     string `json:"projectDescription"`
	PreferredContactMethod string `json:"preferredContactMethod"`
	PreferredContactTime   string `json:"preferredContactTime"`
}

// Request converts the form into the endpoint payload.
func (f QuoteForm) Request() quotes.Request {
	return quotes.Request{
		CompanyName:            f.CompanyName,
		ContactName:            f.ContactName,
		Email:                  f.Email,
		Phone:                  f.Phone,
		PropertyAddress:        f.PropertyAddress,
		PropertyType:           f.PropertyType,
		PropertySize:           f.PropertySize,
		SelectedServices:       append([]string(nil), f.SelectedServices...),
		ProjectType:            f.ProjectType,
		Timeline:               f.Timeline,
		Budget:                 f.Budget,
		ProjectDescription:     f.ProjectDescription,
		PreferredContactMethod: f.PreferredContactMethod,
		PreferredContactTime:   f.PreferredContactTime,
	}
}

// QuoteSteps returns the four quote steps. The last one is checked on submit.
func QuoteSteps(cat *catalog.Catalog) []wizard.Step[QuoteForm] {
	return []wizard.Step[QuoteForm]{
		{
			Name:        "company",
			Title:       "Company Information",
			Description: "Tell us about your business",
			Fields:      []string{"companyName", "contactName", "email", "phone"},
			Validate: func(f QuoteForm) validation.FieldErrors {
				errs := validation.FieldErrors{}
				validation.Text(errs, "companyName", f.CompanyName, "Company name is required")
				validation.Text(errs, "contactName", f.ContactName, "Contact name is required")
				validation.Email(errs, "email", f.Email)
				validation.Phone(errs, "phone", f.Phone)
				return errs
			},
		},
		{
			Name:        "property",
			Title:       "Property Details",
			Description: "Where is the work needed?",
			Fields:      []string{"propertyAddress", "propertyType", "propertySize"},
			Validate: func(f QuoteForm) validation.FieldErrors {
				errs := validation.FieldErrors{}
				validation.Text(errs, "propertyAddress", f.PropertyAddress, "Property address is required")
				validation.Choice(errs, "propertyType", f.PropertyType, cat.Values(catalog.QuotePropertyTypes), "Property type is required")
				validation.Text(errs, "propertySize", f.PropertySize, "Property size is required")
				return errs
			},
		},
		{
			Name:        "services",
			Title:       "Services Needed",
			Description: "What services do you need?",
			Fields:      []string{"selectedServices", "projectType", "timeline", "budget"},
			Validate: func(f QuoteForm) validation.FieldErrors {
				errs := validation.FieldErrors{}
				if len(f.SelectedServices) == 0 {
					errs.Add("selectedServices", "Please select at least one service")
				}
				for _, id := range f.SelectedServices {
					if !cat.HasService(id) {
						errs.Add("selectedServices", "Please select services from the list")
					}
				}
				validation.Choice(errs, "projectType", f.ProjectType, cat.Values(catalog.ProjectTypes), "Project type is required")
				return errs
			},
		},
		{
			Name:        "contact",
			Title:       "Contact & Timeline",
			Description: "How can we reach you?",
			Fields:      []string{"projectDescription", "preferredContactMethod", "preferredContactTime"},
			Validate: func(f QuoteForm) validation.FieldErrors {
				errs := validation.FieldErrors{}
				validation.Text(errs, "projectDescription", f.ProjectDescription, "Project description is required")
				validation.Choice(errs, "preferredContactMethod", f.PreferredContactMethod, cat.Values(catalog.ContactMethods), "Preferred contact method is required")
				return errs
			},
		},
	}
}

// NewQuoteSession starts a quote wizard.
func NewQuoteSession(cat *catalog.Catalog, submitter wizard.Submitter[QuoteForm], opts ...wizard.Option) *wizard.Session[QuoteForm] {
	if cat == nil {
		cat = catalog.Default()
	}
	return wizard.New(QuoteSteps(cat), QuoteForm{}, submitter, opts...)
}
