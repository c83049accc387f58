package bookings

import "github.com/hplandscaping/booking-platform/internal/validation"

// Request is the body accepted by POST /api/booking.
type Request struct {
	SelectedService string `json:"selectedService"`
	ServiceType     string `json:"serviceType"`
	PreferredDate   string `json:"preferredDate"`
	PreferredTime   string `json:"preferredTime"`
	AlternateDate   string `json:"alternateDate,omitempty"`
	AlternateTime   string `json:"alternateTime,omitempty"`
	ContactName     string `json:"contactName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PropertyAddress string `json:"propertyAddress"`
	PropertyType    string `json:"propertyType"`
	AdditionalNotes string `json:"additionalNotes,omitempty"`
	HearAboutUs     string `json:"hearAboutUs,omitempty"`
}

// RequiredFields lists the fields checked for presence, in the order the first
// missing one is reported.
var RequiredFields = []string{
	"selectedService",
	"serviceType",
	"preferredDate",
	"preferredTime",
	"contactName",
	"email",
	"phone",
	"propertyAddress",
	"propertyType",
}

func (r Request) value(field string) string {
	switch field {
	case "selectedService":
		return r.SelectedService
	case "serviceType":
		return r.ServiceType
	case "preferredDate":
		return r.PreferredDate
	case "preferredTime":
		return r.PreferredTime
	case "contactName":
		return r.ContactName
	case "email":
		return r.Email
	case "phone":
		return r.Phone
	case "propertyAddress":
		return r.PropertyAddress
	case "propertyType":
		return r.PropertyType
	}
	return ""
}

// Validate checks required fields, then the email and phone shape.
func (r Request) Validate() error {
	return validation.CheckSubmission(RequiredFields, r.value, r.Email, r.Phone)
}

// Confirmation is the success body returned to the caller.
type Confirmation struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

// SuccessMessage is returned with every accepted booking.
const SuccessMessage = "Booking request submitted successfully"

// AvailabilityResponse is returned by GET /api/booking.
type AvailabilityResponse struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"availableTimes"`
}
