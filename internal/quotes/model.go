package quotes

import (
	"strings"

	"github.com/hplandscaping/booking-platform/internal/validation"
)

// Request is the body accepted by POST /api/quote.
type Request struct {
	CompanyName            string   `json:"companyName"`
	ContactName            string   `json:"contactName"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	PropertyAddress        string   `json:"propertyAddress"`
	PropertyType           string   `json:"propertyType"`
	PropertySize           string   `json:"propertySize"`
	SelectedServices       []string `json:"selectedServices"`
	ProjectType            string   `json:"projectType"`
	Timeline               string   `json:"timeline,omitempty"`
	Budget                 string   `json:"budget,omitempty"`
	ProjectDescription     string   `json:"projectDescription"`
	PreferredContactMethod string   `json:"preferredContactMethod"`
	PreferredContactTime   string   `json:"preferredContactTime,omitempty"`
}

// RequiredFields lists the fields checked for presence, in report order.
var RequiredFields = []string{
	"companyName",
	"contactName",
	"email",
	"phone",
	"propertyAddress",
	"propertyType",
	"propertySize",
	"selectedServices",
	"projectType",
	"projectDescription",
	"preferredContactMethod",
}

func (r Request) value(field string) string {
	switch field {
	case "companyName":
		return r.CompanyName
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
	case "propertySize":
		return r.PropertySize
	case "selectedServices":
		return strings.Join(r.SelectedServices, "")
	case "projectType":
		return r.ProjectType
	case "projectDescription":
		return r.ProjectDescription
	case "preferredContactMethod":
		return r.PreferredContactMethod
	}
	return ""
}

// Validate checks required fields, then the email and phone shape.
func (r Request) Validate() error {
	return validation.CheckSubmission(RequiredFields, r.value, r.Email, r.Phone)
}

// Confirmation is the success body returned to the caller.
type Confirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	QuoteID string `json:"quoteId"`
}

// SuccessMessage is returned with every accepted quote request.
const SuccessMessage = "Quote request submitted successfully"

// ProcessingError is the body text for any unexpected failure.
const ProcessingError = "Failed to process quote request"
