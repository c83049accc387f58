// Package catalog exposes the static list of offered services and the fixed
// choice sets used by the booking and quote forms.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Option kinds.
const (
	AppointmentTypes     = "appointment_types"
	BookingPropertyTypes = "booking_property_types"
	QuotePropertyTypes   = "quote_property_types"
	ProjectTypes         = "project_types"
	ContactMethods       = "contact_methods"
	ReferralSources      = "referral_sources"
)

// ErrUnknownService is returned when a service id is not in the catalog.
var ErrUnknownService = errors.New("catalog: unknown service")

// Service is one offerable service.
type Service struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Option is one value of an enumerated choice set.
type Option struct {
	Value       string `yaml:"value" json:"value"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Catalog is the parsed catalog document.
type Catalog struct {
	Services []Service           `yaml:"services"`
	Choices  map[string][]Option `yaml:"options"`

	byID map[string]Service
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded document is
// malformed, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embedded)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	c.byID = make(map[string]Service, len(c.Services))
	for _, s := range c.Services {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, errors.New("catalog: service without id")
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate service id %q", id)
		}
		c.byID[id] = s
	}
	for kind, opts := range c.Choices {
		seen := map[string]struct{}{}
		for _, o := range opts {
			if _, dup := seen[o.Value]; dup {
				return nil, fmt.Errorf("catalog: duplicate %s value %q", kind, o.Value)
			}
			seen[o.Value] = struct{}{}
		}
	}
	return &c, nil
}

// Service returns the service with the given id.
func (c *Catalog) Service(id string) (Service, error) {
	s, ok := c.byID[id]
	if !ok {
		return Service{}, fmt.Errorf("%w: %q", ErrUnknownService, id)
	}
	return s, nil
}

// HasService reports whether id is a known service.
func (c *Catalog) HasService(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// ServiceIDs returns the service ids in catalog order.
func (c *Catalog) ServiceIDs() []string {
	out := make([]string, 0, len(c.Services))
	for _, s := range c.Services {
		out = append(out, s.ID)
	}
	return out
}

// Options returns the choices of the given kind in catalog order.
func (c *Catalog) Options(kind string) []Option {
	return append([]Option(nil), c.Choices[kind]...)
}

// Values returns only the values of the given kind.
func (c *Catalog) Values(kind string) []string {
	opts := c.Choices[kind]
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}

// Label returns the display label for value, or value itself when unknown.
func (c *Catalog) Label(kind, value string) string {
	for _, o := range c.Choices[kind] {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
