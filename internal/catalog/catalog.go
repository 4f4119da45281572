// Package catalog holds the fixed service and frequency reference data.
package catalog

import "strings"

type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	BasePrice    float64  `json:"base_price"`
	PerRoomPrice float64  `json:"per_room_price"`
	Duration     string   `json:"duration"`
	Locations    []string `json:"locations"`
	Features     []string `json:"features"`
}

func (s Service) clone() Service {
	s.Locations = append([]string(nil), s.Locations...)
	s.Features = append([]string(nil), s.Features...)

	return s
}

type Frequency struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Discount float64 `json:"discount"`
}

type Catalog struct {
	services    []Service
	frequencies []Frequency
	timeSlots   []string
}

func New() *Catalog {
	return &Catalog{
		services:    defaultServices,
		frequencies: defaultFrequencies,
		timeSlots:   defaultTimeSlots,
	}
}

func (c *Catalog) Services() []Service {
	out := make([]Service, 0, len(c.services))
	for _, s := range c.services {
		out = append(out, s.clone())
	}

	return out
}

// LookupService returns a copy, so callers may keep the feature list.
func (c *Catalog) LookupService(id string) (Service, bool) {
	for _, s := range c.services {
		if s.ID == id {
			return s.clone(), true
		}
	}

	return Service{}, false
}

func (c *Catalog) Frequencies() []Frequency {
	return append([]Frequency(nil), c.frequencies...)
}

func (c *Catalog) LookupFrequency(id string) (Frequency, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "once" {
		id = FrequencyOneTime
	}

	for _, f := range c.frequencies {
		if f.ID == id {
			return f, true
		}
	}

	return Frequency{}, false
}

func (c *Catalog) TimeSlots() []string {
	return append([]string(nil), c.timeSlots...)
}
