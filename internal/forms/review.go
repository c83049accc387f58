package forms

import (
	"strings"

	"github.com/hplandscaping/booking-platform/internal/catalog"
)

// Line is one row of a review screen.
type Line struct {
	Label string
	Value string
}

type lines []Line

func (l *lines) add(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	*l = append(*l, Line{Label: label, Value: value})
}

func serviceName(cat *catalog.Catalog, id string) string {
	if svc, err := cat.Service(id); err == nil {
		return svc.Name
	}
	return id
}

// Review lists what the user entered, with catalog labels instead of ids.
func (f BookingForm) Review(cat *catalog.Catalog) []Line {
	var out lines
	out.add("Service", serviceName(cat, f.SelectedService))
	out.add("Appointment type", cat.Label(catalog.AppointmentTypes, f.ServiceType))
	if !f.PreferredDate.IsZero() {
		out.add("Preferred", strings.TrimSpace(f.PreferredDate.Long()+" "+f.PreferredTime))
	}
	if !f.AlternateDate.IsZero() {
		out.add("Alternate", strings.TrimSpace(f.AlternateDate.Long()+" "+f.AlternateTime))
	}
	out.add("Name", f.ContactName)
	out.add("Email", f.Email)
	out.add("Phone", f.Phone)
	out.add("Address", f.PropertyAddress)
	out.add("Property type", cat.Label(catalog.BookingPropertyTypes, f.PropertyType))
	return out
}

// Review lists what the user entered, with catalog labels instead of ids.
func (f QuoteForm) Review(cat *catalog.Catalog) []Line {
	names := make([]string, 0, len(f.SelectedServices))
	for _, id := range f.SelectedServices {
		names = append(names, serviceName(cat, id))
	}

	var out lines
	out.add("Company", f.CompanyName)
	out.add("Contact", f.ContactName)
	out.add("Email", f.Email)
	out.add("Phone", f.Phone)
	out.add("Address", f.PropertyAddress)
	out.add("Property type", cat.Label(catalog.QuotePropertyTypes, f.PropertyType))
	out.add("Property size", f.PropertySize)
	out.add("Services", strings.Join(names, ", "))
	out.add("Project type", cat.Label(catalog.ProjectTypes, f.ProjectType))
	out.add("Timeline", f.Timeline)
	out.add("Budget", f.Budget)
	out.add("Preferred contact", cat.Label(catalog.ContactMethods, f.PreferredContactMethod))
	return out
}
