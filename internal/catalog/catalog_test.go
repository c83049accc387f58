package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogServices(t *testing.T) {
	c := Default()

	want := []string{
		"landscape-design",
		"irrigation-systems",
		"water-features",
		"maintenance",
		"outdoor-lighting",
		"hardscaping",
	}
	if diff := cmp.Diff(want, c.ServiceIDs()); diff != "" {
		t.Fatalf("service ids mismatch (-want +got):\n%s", diff)
	}

	svc, err := c.Service("landscape-design")
	if err != nil {
		t.Fatalf("Service: %v", err)
	}
	if svc.Name == "" || svc.Description == "" {
		t.Fatalf("expected name and description, got %+v", svc)
	}

	if _, err := c.Service("snow-removal"); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
}

func TestDefaultCatalogOptions(t *testing.T) {
	c := Default()

	cases := map[string][]string{
		AppointmentTypes:     {"consultation", "estimate", "service"},
		BookingPropertyTypes: {"residential", "commercial", "hoa"},
		QuotePropertyTypes:   {"commercial", "residential", "industrial", "municipal"},
		ProjectTypes:         {"one-time", "recurring", "both"},
		ContactMethods:       {"email", "phone", "either"},
	}
	for kind, want := range cases {
		if diff := cmp.Diff(want, c.Values(kind)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", kind, diff)
		}
	}

	if got := c.Label(BookingPropertyTypes, "hoa"); got != "HOA/Multi-Family" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := c.Label(BookingPropertyTypes, "castle"); got != "castle" {
		t.Fatalf("unknown values should echo, got %q", got)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	doc := []byte(`
services:
  - id: a
    name: A
  - id: a
    name: A again
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected duplicate id error")
	}

	doc = []byte(`
options:
  contact_methods:
    - value: email
    - value: email
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("expected duplicate option error")
	}
}
