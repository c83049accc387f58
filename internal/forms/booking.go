package forms

import (
	"time"

	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/bookings"
	"github.com/hplandscaping/booking-platform/internal/catalog"
	"github.com/hplandscaping/booking-platform/internal/validation"
	"github.com/hplandscaping/booking-platform/internal/wizard"
)

// BookingForm holds every field of the appointment wizard. JSON names are the
// names accepted by SetField and sent to POST /api/booking.
type BookingForm struct {
	// Service
	SelectedService string `json:"selectedService"`
	ServiceType     string `json:"serviceType"`

	// Schedule
	PreferredDate availability.Date `json:"preferredDate"`
	PreferredTime string            `json:"preferredTime"`
	AlternateDate availability.Date `json:"alternateDate"`
	AlternateTime string            `json:"alternateTime"`

	// Contact
	ContactName     string `json:"contactName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PropertyAddress string `json:"propertyAddress"`
	PropertyType    string `json:"propertyType"`

	// Confirm
	AdditionalNotes string `json:"additionalNotes"`
	HearAboutUs     string `json:"hearAboutUs"`
}

// Request converts the form into the endpoint payload.
func (f BookingForm) Request() bookings.Request {
	req := bookings.Request{
		SelectedService: f.SelectedService,
		ServiceType:     f.ServiceType,
		PreferredTime:   f.PreferredTime,
		AlternateTime:   f.AlternateTime,
		ContactName:     f.ContactName,
		Email:           f.Email,
		Phone:           f.Phone,
		PropertyAddress: f.PropertyAddress,
		PropertyType:    f.PropertyType,
		AdditionalNotes: f.AdditionalNotes,
		HearAboutUs:     f.HearAboutUs,
	}
	if !f.PreferredDate.IsZero() {
		req.PreferredDate = f.PreferredDate.String()
	}
	if !f.AlternateDate.IsZero() {
		req.AlternateDate = f.AlternateDate.String()
	}
	return req
}

// BookingSteps returns the four appointment steps. Dates are checked against
// provider and services against cat.
func BookingSteps(provider *availability.Provider, cat *catalog.Catalog) []wizard.Step[BookingForm] {
	return []wizard.Step[BookingForm]{
		{
			Name:        "service",
			Title:       "Service",
			Description: "What do you need?",
			Fields:      []string{"selectedService", "serviceType"},
			Validate: func(f BookingForm) validation.FieldErrors {
				errs := validation.FieldErrors{}
				if !cat.HasService(f.SelectedService) {
					errs.Add("selectedService", "Please select a service")
				}
				validation.Choice(errs, "serviceType", f.ServiceType, cat.Values(catalog.AppointmentTypes), "Please select appointment type")
				return errs
			},
		},
		{
			Name:        "schedule",
			Title:       "Schedule",
			Description: "When works for you?",
			Fields:      []string{"preferredDate", "preferredTime", "alternateDate", "alternateTime"},
			Validate: func(f BookingForm) validation.FieldErrors {
				errs := validation.FieldErrors{}
				switch {
				case f.PreferredDate.IsZero():
					errs.Add("preferredDate", "Please select a preferred date")
				case !provider.IsAvailable(f.PreferredDate):
					errs.Add("preferredDate", "That date is not available")
				}
				if !availability.IsSlot(f.PreferredTime) {
					errs.Add("preferredTime", "Please select a preferred time")
				}
				if !f.AlternateDate.IsZero() && !provider.IsAvailable(f.AlternateDate) {
					errs.Add("alternateDate", "That date is not available")
				}
				if f.AlternateTime != "" && !availability.IsSlot(f.AlternateTime) {
					errs.Add("alternateTime", "Please select a listed time")
				}
				return errs
			},
		},
		{
			Name:        "contact",
			Title:       "Contact",
			Description: "Your information",
			Fields:      []string{"contactName", "email", "phone", "propertyAddress", "propertyType"},
			Validate: func(f BookingForm) validation.FieldErrors {
				errs := validation.FieldErrors{}
				validation.Text(errs, "contactName", f.ContactName, "Name is required")
				validation.Email(errs, "email", f.Email)
				validation.Phone(errs, "phone", f.Phone)
				validation.Text(errs, "propertyAddress", f.PropertyAddress, "Property address is required")
				validation.Choice(errs, "propertyType", f.PropertyType, cat.Values(catalog.BookingPropertyTypes), "Property type is required")
				return errs
			},
		},
		{
			Name:        "confirm",
			Title:       "Confirm",
			Description: "Review & submit",
			Fields:      []string{"additionalNotes", "hearAboutUs"},
		},
	}
}

// NewBookingSession starts an appointment wizard.
func NewBookingSession(provider *availability.Provider, cat *catalog.Catalog, submitter wizard.Submitter[BookingForm], opts ...wizard.Option) *wizard.Session[BookingForm] {
	if cat == nil {
		cat = catalog.Default()
	}
	if provider == nil {
		provider = availability.NewProvider(time.Local)
	}
	return wizard.New(BookingSteps(provider, cat), BookingForm{}, submitter, opts...)
}
