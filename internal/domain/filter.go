package domain

import "strings"

// FilterState is the ephemeral set of search constraints for a listings view.
// PriceMin <= PriceMax is not enforced; an inverted range simply matches
// nothing. An empty Types set means every type passes.
type FilterState struct {
	Search   string
	PriceMin float64
	PriceMax float64
	MinBeds  int
	Types    []string
}

// FilterProperties returns the ordered sub-sequence of properties satisfying
// every constraint conjunctively: case-insensitive substring match of Search
// against title or location, effective price within [PriceMin, PriceMax],
// Beds >= MinBeds, and type membership when Types is non-empty. Records
// missing title or location are skipped rather than erroring.
func FilterProperties(properties []Property, f FilterState) []Property {
	q := strings.ToLower(f.Search)
	out := make([]Property, 0, len(properties))
	for _, p := range properties {
		if p.Title == "" || p.Location == "" {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Location), q) {
			continue
		}
		price := p.EffectivePrice()
		if price < f.PriceMin || price > f.PriceMax {
			continue
		}
		if p.Beds < f.MinBeds {
			continue
		}
		if len(f.Types) > 0 && !containsString(f.Types, p.Type) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PropertyTypes returns the distinct type tags present in the collection,
// in first-seen order (drives the type checkbox list).
func PropertyTypes(properties []Property) []string {
	seen := make(map[string]struct{}, 8)
	var out []string
	for _, p := range properties {
		if p.Type == "" {
			continue
		}
		if _, ok := seen[p.Type]; ok {
			continue
		}
		seen[p.Type] = struct{}{}
		out = append(out, p.Type)
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
