package catalog

import (
	"slices"
	"strings"
)

const (
	PriceUnder100  = "under100"
	Price100To150  = "100to150"
	PriceOver150   = "over150"
	filterWildcard = "all"
)

// Filter narrows the service directory. Empty fields and "all" match everything.
type Filter struct {
	Search     string
	Category   string
	Location   string
	PriceRange string
}

func (f Filter) Match(s Service) bool {
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		if !strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) {
			return false
		}
	}

	if active(f.Category) && s.Category != f.Category {
		return false
	}

	if active(f.Location) && !slices.Contains(s.Locations, strings.ToLower(f.Location)) {
		return false
	}

	switch f.PriceRange {
	case PriceUnder100:
		return s.BasePrice < 100
	case Price100To150:
		return s.BasePrice >= 100 && s.BasePrice <= 150
	case PriceOver150:
		return s.BasePrice > 150
	}

	return true
}

func (c *Catalog) Find(f Filter) []Service {
	var out []Service

	for _, s := range c.services {
		if f.Match(s) {
			out = append(out, s.clone())
		}
	}

	return out
}

func active(v string) bool {
	return v != "" && v != filterWildcard
}
